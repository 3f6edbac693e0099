package owner

import (
	"time"

	"github.com/google/uuid"

	"github.com/furrymatch/service-matching/internal/platform/domain"
)

// Owner is the profile of an authenticated user. Its id is the user id
// carried in the access token.
type Owner struct {
	id               uuid.UUID
	firstName        string
	lastName         string
	phone            string
	photoURL         string
	province         string
	canton           string
	district         string
	selectedPetID    *uuid.UUID
	activeMatchID    *uuid.UUID
	activeMatchPetID *uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
}

// Profile groups the editable contact and location fields.
type Profile struct {
	FirstName string
	LastName  string
	Phone     string
	PhotoURL  string
	Province  string
	Canton    string
	District  string
}

// NewOwner creates a profile for the given user.
func NewOwner(id uuid.UUID, p Profile) (*Owner, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	now := time.Now().UTC()
	o := &Owner{id: id, createdAt: now, updatedAt: now}
	o.apply(p)
	return o, nil
}

// Reconstruct rebuilds an Owner from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	p Profile,
	selectedPetID, activeMatchID, activeMatchPetID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Owner {
	o := &Owner{
		id:               id,
		selectedPetID:    selectedPetID,
		activeMatchID:    activeMatchID,
		activeMatchPetID: activeMatchPetID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
	o.apply(p)
	return o
}

func (o *Owner) ID() uuid.UUID                { return o.id }
func (o *Owner) FirstName() string            { return o.firstName }
func (o *Owner) LastName() string             { return o.lastName }
func (o *Owner) Phone() string                { return o.phone }
func (o *Owner) PhotoURL() string             { return o.photoURL }
func (o *Owner) Province() string             { return o.province }
func (o *Owner) Canton() string               { return o.canton }
func (o *Owner) District() string             { return o.district }
func (o *Owner) SelectedPetID() *uuid.UUID    { return o.selectedPetID }
func (o *Owner) ActiveMatchID() *uuid.UUID    { return o.activeMatchID }
func (o *Owner) ActiveMatchPetID() *uuid.UUID { return o.activeMatchPetID }
func (o *Owner) CreatedAt() time.Time         { return o.createdAt }
func (o *Owner) UpdatedAt() time.Time         { return o.updatedAt }

// Profile returns the editable fields.
func (o *Owner) Profile() Profile {
	return Profile{
		FirstName: o.firstName,
		LastName:  o.lastName,
		Phone:     o.phone,
		PhotoURL:  o.photoURL,
		Province:  o.province,
		Canton:    o.canton,
		District:  o.district,
	}
}

// UpdateProfile replaces the contact and location fields.
func (o *Owner) UpdateProfile(p Profile) {
	o.apply(p)
	o.touch()
}

// SelectPet makes petID the pet the owner is browsing as.
func (o *Owner) SelectPet(petID uuid.UUID) {
	o.selectedPetID = &petID
	o.touch()
}

// CurrentPet returns the selected pet, if any.
func (o *Owner) CurrentPet() (uuid.UUID, bool) {
	if o.selectedPetID == nil {
		return uuid.Nil, false
	}
	return *o.selectedPetID, true
}

// SetActiveMatch records the conversation the owner has open and the
// counterpart pet shown in it.
func (o *Owner) SetActiveMatch(matchID, matchPetID uuid.UUID) {
	o.activeMatchID = &matchID
	o.activeMatchPetID = &matchPetID
	o.touch()
}

// ClearActiveMatch forgets the open conversation.
func (o *Owner) ClearActiveMatch() {
	o.activeMatchID = nil
	o.activeMatchPetID = nil
	o.touch()
}

func (o *Owner) apply(p Profile) {
	o.firstName = p.FirstName
	o.lastName = p.LastName
	o.phone = p.Phone
	o.photoURL = p.PhotoURL
	o.province = p.Province
	o.canton = p.Canton
	o.district = p.District
}

func (o *Owner) touch() {
	o.updatedAt = time.Now().UTC()
}
