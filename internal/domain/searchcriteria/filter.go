package searchcriteria

import (
	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Condition is one SQL predicate with its bind arguments.
type Condition struct {
	Query string
	Args  []interface{}
}

// Filter is a pet search issued by an owner browsing as one of their pets.
type Filter struct {
	RequesterID uuid.UUID
	ActivePetID uuid.UUID
	Criteria
}

// NewFilter validates the requester and active pet.
func NewFilter(requesterID, activePetID uuid.UUID, c Criteria) (Filter, error) {
	if requesterID == uuid.Nil {
		return Filter{}, domain.NewValidationError("requester ID is required")
	}
	if activePetID == uuid.Nil {
		return Filter{}, domain.NewValidationError("an active pet is required to search")
	}
	return Filter{RequesterID: requesterID, ActivePetID: activePetID, Criteria: c}, nil
}

// Conditions returns the conjunction of predicates for this search. Optional
// predicates appear only when their criterion is set; the requester's own
// pets and pets the active pet already liked are always excluded.
//
// Column references assume pets joined with owners and left-joined with
// search_criteria.
func (f Filter) Conditions() []Condition {
	var conds []Condition
	add := func(q string, args ...interface{}) {
		conds = append(conds, Condition{Query: q, Args: args})
	}

	if f.Objective != nil {
		add("search_criteria.objective = ?", string(*f.Objective))
	}
	if f.PetType != nil {
		add("pets.pet_type = ?", string(*f.PetType))
	}
	if f.Sex != nil {
		add("pets.sex = ?", string(*f.Sex))
	}
	if f.BreedID != nil {
		add("pets.breed_id = ?", *f.BreedID)
	}
	if f.TradePups != nil {
		add("pets.trade_pups = ?", *f.TradePups)
	}
	if f.Pedigree != nil {
		add("pets.pedigree = ?", *f.Pedigree)
	}
	if f.TradeMoney != nil {
		add("pets.trade_money = ?", *f.TradeMoney)
	}
	if f.Province != "" {
		add("owners.province = ?", f.Province)
	}
	if f.Canton != "" {
		add("owners.canton = ?", f.Canton)
	}
	if f.District != "" {
		add("owners.district = ?", f.District)
	}

	add("pets.owner_id <> ?", f.RequesterID)
	add("pets.id NOT IN (SELECT likees.second_pet_id FROM likees WHERE likees.first_pet_id = ?)", f.ActivePetID)
	return conds
}

// OrderBy is the deterministic result order: newest first, ties by id.
const OrderBy = "pets.created_at DESC, pets.id"
