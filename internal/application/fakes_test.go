package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	breedDomain "github.com/furrymatch/service-matching/internal/domain/breed"
	chatDomain "github.com/furrymatch/service-matching/internal/domain/chat"
	contractDomain "github.com/furrymatch/service-matching/internal/domain/contract"
	likeeDomain "github.com/furrymatch/service-matching/internal/domain/likee"
	matchDomain "github.com/furrymatch/service-matching/internal/domain/match"
	ownerDomain "github.com/furrymatch/service-matching/internal/domain/owner"
	petDomain "github.com/furrymatch/service-matching/internal/domain/pet"
	photoDomain "github.com/furrymatch/service-matching/internal/domain/photo"
	"github.com/furrymatch/service-matching/internal/domain/searchcriteria"
	"github.com/furrymatch/service-matching/internal/platform/domain"
	"github.com/furrymatch/service-matching/internal/platform/kafka"
)

// --- pets ---

type fakePetRepo struct {
	pets map[uuid.UUID]*petDomain.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: map[uuid.UUID]*petDomain.Pet{}}
}

func (r *fakePetRepo) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return p, nil
}

func (r *fakePetRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*petDomain.Pet, error) {
	var out []*petDomain.Pet
	for _, id := range ids {
		if p, ok := r.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var out []*petDomain.Pet
	for _, p := range r.pets {
		if p.OwnerID() == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) List(_ context.Context, page, limit int) ([]*petDomain.Pet, int64, error) {
	all := make([]*petDomain.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().After(all[j].CreatedAt()) })
	start := domain.Offset(page, limit)
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakePetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	r.pets[p.ID()] = p
	return nil
}

func (r *fakePetRepo) Update(_ context.Context, p *petDomain.Pet) error {
	r.pets[p.ID()] = p
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.pets[id]; !ok {
		return domain.NewNotFoundError("Pet", id.String())
	}
	delete(r.pets, id)
	return nil
}

func (r *fakePetRepo) Count(context.Context) (int64, error) { return int64(len(r.pets)), nil }

func (r *fakePetRepo) add(ownerID uuid.UUID, name string, sex petDomain.Sex) *petDomain.Pet {
	p, err := petDomain.NewPet(ownerID, name, petDomain.PetTypeDog, sex, nil, "", petDomain.Traits{})
	if err != nil {
		panic(err)
	}
	r.pets[p.ID()] = p
	return p
}

// --- breeds ---

type fakeBreedRepo struct {
	breeds map[int64]breedDomain.Breed
}

func newFakeBreedRepo() *fakeBreedRepo {
	return &fakeBreedRepo{breeds: map[int64]breedDomain.Breed{
		1: {ID: 1, Name: "Labrador Retriever", PetType: petDomain.PetTypeDog},
		2: {ID: 2, Name: "Siamese", PetType: petDomain.PetTypeCat},
	}}
}

func (r *fakeBreedRepo) List(_ context.Context, petType *petDomain.PetType) ([]breedDomain.Breed, error) {
	var out []breedDomain.Breed
	for _, b := range r.breeds {
		if petType == nil || b.PetType == *petType {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBreedRepo) FindByID(_ context.Context, id int64) (*breedDomain.Breed, error) {
	b, ok := r.breeds[id]
	if !ok {
		return nil, domain.NewNotFoundError("Breed", "")
	}
	return &b, nil
}

// --- search ---

type fakeCriteriaRepo struct {
	rows map[uuid.UUID]*searchcriteria.SearchCriteria
}

func newFakeCriteriaRepo() *fakeCriteriaRepo {
	return &fakeCriteriaRepo{rows: map[uuid.UUID]*searchcriteria.SearchCriteria{}}
}

func (r *fakeCriteriaRepo) FindByPetID(_ context.Context, petID uuid.UUID) (*searchcriteria.SearchCriteria, error) {
	sc, ok := r.rows[petID]
	if !ok {
		return nil, domain.NewNotFoundError("SearchCriteria", petID.String())
	}
	return sc, nil
}

func (r *fakeCriteriaRepo) Upsert(_ context.Context, sc *searchcriteria.SearchCriteria) error {
	r.rows[sc.PetID()] = sc
	return nil
}

type fakeSearcher struct {
	calls   int
	last    searchcriteria.Filter
	results []*petDomain.Pet
}

func (s *fakeSearcher) Search(_ context.Context, f searchcriteria.Filter, _, _ int) ([]*petDomain.Pet, int64, error) {
	s.calls++
	s.last = f
	return s.results, int64(len(s.results)), nil
}

// --- owners ---

type fakeOwnerRepo struct {
	owners map[uuid.UUID]*ownerDomain.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: map[uuid.UUID]*ownerDomain.Owner{}}
}

func (r *fakeOwnerRepo) FindByID(_ context.Context, id uuid.UUID) (*ownerDomain.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, domain.NewNotFoundError("Owner", id.String())
	}
	return o, nil
}

func (r *fakeOwnerRepo) Save(_ context.Context, o *ownerDomain.Owner) error {
	r.owners[o.ID()] = o
	return nil
}

func (r *fakeOwnerRepo) SaveIfAbsent(_ context.Context, o *ownerDomain.Owner) (bool, error) {
	if _, ok := r.owners[o.ID()]; ok {
		return false, nil
	}
	r.owners[o.ID()] = o
	return true, nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, o *ownerDomain.Owner) error {
	if _, ok := r.owners[o.ID()]; !ok {
		return domain.NewNotFoundError("Owner", o.ID().String())
	}
	r.owners[o.ID()] = o
	return nil
}

func (r *fakeOwnerRepo) Count(context.Context) (int64, error) { return int64(len(r.owners)), nil }

// --- likes ---

type pair struct{ first, second uuid.UUID }

type fakeLikeeRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*likeeDomain.Likee
	byPair map[pair]*likeeDomain.Likee
	locks  int
}

func newFakeLikeeRepo() *fakeLikeeRepo {
	return &fakeLikeeRepo{
		byID:   map[uuid.UUID]*likeeDomain.Likee{},
		byPair: map[pair]*likeeDomain.Likee{},
	}
}

func (r *fakeLikeeRepo) FindByID(_ context.Context, id uuid.UUID) (*likeeDomain.Likee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Likee", id.String())
	}
	return l, nil
}

func (r *fakeLikeeRepo) FindByPair(_ context.Context, first, second uuid.UUID) (*likeeDomain.Likee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byPair[pair{first, second}]
	if !ok {
		return nil, domain.NewNotFoundError("Likee", first.String()+"->"+second.String())
	}
	return l, nil
}

func (r *fakeLikeeRepo) SaveIfAbsent(_ context.Context, l *likeeDomain.Likee) (*likeeDomain.Likee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pair{l.FirstPetID(), l.SecondPetID()}
	if existing, ok := r.byPair[key]; ok {
		return existing, nil
	}
	r.byPair[key] = l
	r.byID[l.ID()] = l
	return l, nil
}

func (r *fakeLikeeRepo) LockPair(context.Context, uuid.UUID, uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks++
	return nil
}

func (r *fakeLikeeRepo) FindByFirstPetID(_ context.Context, petID uuid.UUID, page, limit int) ([]*likeeDomain.Likee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*likeeDomain.Likee
	for _, l := range r.byID {
		if l.FirstPetID() == petID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLikeeRepo) UpdateState(_ context.Context, l *likeeDomain.Likee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[l.ID()] = l
	return nil
}

func (r *fakeLikeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return domain.NewNotFoundError("Likee", id.String())
	}
	delete(r.byID, id)
	delete(r.byPair, pair{l.FirstPetID(), l.SecondPetID()})
	return nil
}

func (r *fakeLikeeRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

// --- matches ---

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[uuid.UUID]*matchDomain.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[uuid.UUID]*matchDomain.Match{}}
}

func unordered(a, b uuid.UUID) pair {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pair{a, b}
}

func (r *fakeMatchRepo) FindByID(_ context.Context, id uuid.UUID) (*matchDomain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.NewNotFoundError("Match", id.String())
	}
	return copyMatch(m, m.NotifyMatch(), m.ContractID()), nil
}

// copyMatch detaches a loaded match from the stored one, like a row read
// from the database.
func copyMatch(m *matchDomain.Match, notify bool, contractID *uuid.UUID) *matchDomain.Match {
	return matchDomain.Reconstruct(m.ID(), m.FirstLikedID(), m.SecondLikedID(),
		m.FirstPetID(), m.SecondPetID(), notify, m.MatchDate(), contractID, m.CreatedAt())
}

func (r *fakeMatchRepo) Upsert(_ context.Context, m *matchDomain.Match) (*matchDomain.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := unordered(m.FirstPetID(), m.SecondPetID())
	for _, existing := range r.matches {
		if unordered(existing.FirstPetID(), existing.SecondPetID()) == key {
			return existing, false, nil
		}
	}
	r.matches[m.ID()] = m
	return m, true, nil
}

func (r *fakeMatchRepo) FindByPetID(_ context.Context, petID uuid.UUID) ([]*matchDomain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*matchDomain.Match
	for _, m := range r.matches {
		if m.Involves(petID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (r *fakeMatchRepo) LatestForPet(ctx context.Context, petID uuid.UUID) (*matchDomain.Match, error) {
	ms, _ := r.FindByPetID(ctx, petID)
	if len(ms) == 0 {
		return nil, domain.NewNotFoundError("Match", "pet "+petID.String())
	}
	return ms[0], nil
}

func (r *fakeMatchRepo) Acknowledge(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.matches[id]
	if !ok {
		return domain.NewNotFoundError("Match", id.String())
	}
	r.matches[id] = copyMatch(stored, false, stored.ContractID())
	return nil
}

func (r *fakeMatchRepo) UpdateContractLink(_ context.Context, m *matchDomain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.matches[m.ID()]
	if !ok {
		return domain.NewNotFoundError("Match", m.ID().String())
	}
	r.matches[m.ID()] = copyMatch(stored, stored.NotifyMatch(), m.ContractID())
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return domain.NewNotFoundError("Match", id.String())
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matches)), nil
}

// add stores a match between two pets built from a pair of inverse likes.
func (r *fakeMatchRepo) add(first, second uuid.UUID, createdAt time.Time) *matchDomain.Match {
	m := matchDomain.Reconstruct(uuid.New(), uuid.New(), uuid.New(), first, second, true,
		createdAt.Truncate(24*time.Hour), nil, createdAt)
	r.matches[m.ID()] = m
	return m
}

// --- chat ---

type fakeMessageRepo struct {
	msgs []*chatDomain.Message
}

func (r *fakeMessageRepo) Save(_ context.Context, m *chatDomain.Message) error {
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *fakeMessageRepo) SaveIfAbsent(_ context.Context, m *chatDomain.Message) (bool, error) {
	for _, existing := range r.msgs {
		if existing.ID() == m.ID() {
			return false, nil
		}
	}
	r.msgs = append(r.msgs, m)
	return true, nil
}

func (r *fakeMessageRepo) FindByMatchID(_ context.Context, matchID uuid.UUID) ([]*chatDomain.Message, error) {
	var out []*chatDomain.Message
	for _, m := range r.msgs {
		if m.MatchID() == matchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindUnreadByRecipient(_ context.Context, recipientID uuid.UUID) ([]*chatDomain.Message, error) {
	var out []*chatDomain.Message
	for _, m := range r.msgs {
		if m.RecipientID() != nil && *m.RecipientID() == recipientID && m.Status() == chatDomain.StatusUnread {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, rr chatDomain.ReadReceipt) (int64, error) {
	var n int64
	for i, m := range r.msgs {
		if m.MatchID() != rr.MatchID || m.SenderID() == nil || *m.SenderID() != rr.SenderID {
			continue
		}
		if m.RecipientID() == nil || *m.RecipientID() != rr.RecipientID || m.Status() != chatDomain.StatusUnread {
			continue
		}
		readAt := rr.ReadAt
		r.msgs[i] = chatDomain.Reconstruct(m.ID(), m.MatchID(), m.SenderID(), m.RecipientID(),
			m.Text(), chatDomain.StatusRead, m.System(), m.SentAt(), &readAt)
		n++
	}
	return n, nil
}

func (r *fakeMessageRepo) LastSentAt(_ context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range matchIDs {
		want[id] = true
	}
	out := map[uuid.UUID]time.Time{}
	for _, m := range r.msgs {
		if !want[m.MatchID()] {
			continue
		}
		if m.SentAt().After(out[m.MatchID()]) {
			out[m.MatchID()] = m.SentAt()
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteByMatchID(_ context.Context, matchID uuid.UUID) (int64, error) {
	kept := r.msgs[:0]
	var n int64
	for _, m := range r.msgs {
		if m.MatchID() == matchID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.msgs = kept
	return n, nil
}

func (r *fakeMessageRepo) Count(context.Context) (int64, error) { return int64(len(r.msgs)), nil }

// --- contracts ---

type fakeContractRepo struct {
	contracts map[uuid.UUID]*contractDomain.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: map[uuid.UUID]*contractDomain.Contract{}}
}

func (r *fakeContractRepo) FindByID(_ context.Context, id uuid.UUID) (*contractDomain.Contract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return nil, domain.NewNotFoundError("Contract", id.String())
	}
	return c, nil
}

func (r *fakeContractRepo) FindByMatchID(_ context.Context, matchID uuid.UUID) (*contractDomain.Contract, error) {
	for _, c := range r.contracts {
		if c.MatchID() == matchID {
			return c, nil
		}
	}
	return nil, domain.NewNotFoundError("Contract", "match "+matchID.String())
}

func (r *fakeContractRepo) FindByMatchIDs(_ context.Context, matchIDs []uuid.UUID) (map[uuid.UUID]*contractDomain.Contract, error) {
	out := map[uuid.UUID]*contractDomain.Contract{}
	for _, id := range matchIDs {
		for _, c := range r.contracts {
			if c.MatchID() == id {
				out[id] = c
			}
		}
	}
	return out, nil
}

func (r *fakeContractRepo) Save(_ context.Context, c *contractDomain.Contract) error {
	for _, existing := range r.contracts {
		if existing.MatchID() == c.MatchID() {
			return gorm.ErrDuplicatedKey
		}
	}
	r.contracts[c.ID()] = c
	return nil
}

func (r *fakeContractRepo) Update(_ context.Context, c *contractDomain.Contract) error {
	r.contracts[c.ID()] = c
	return nil
}

func (r *fakeContractRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.contracts[id]; !ok {
		return domain.NewNotFoundError("Contract", id.String())
	}
	delete(r.contracts, id)
	return nil
}

func (r *fakeContractRepo) CountByStatus(context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, c := range r.contracts {
		out[c.Status().String()]++
	}
	return out, nil
}

// --- photos ---

type fakePhotoRepo struct {
	photos map[uuid.UUID]*photoDomain.PetPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[uuid.UUID]*photoDomain.PetPhoto{}}
}

func (r *fakePhotoRepo) Save(_ context.Context, p *photoDomain.PetPhoto) error {
	r.photos[p.ID()] = p
	return nil
}

func (r *fakePhotoRepo) FindByPetID(_ context.Context, petID uuid.UUID) ([]*photoDomain.PetPhoto, error) {
	var out []*photoDomain.PetPhoto
	for _, p := range r.photos {
		if p.PetID() == petID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) FindByID(_ context.Context, id uuid.UUID) (*photoDomain.PetPhoto, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.NewNotFoundError("PetPhoto", id.String())
	}
	return p, nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.photos, id)
	return nil
}

// --- ports ---

type publishedEvent struct {
	topic string
	event kafka.CloudEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, event: event})
	return nil
}

func (p *fakePublisher) ofType(eventType string) []kafka.CloudEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []kafka.CloudEvent
	for _, e := range p.events {
		if e.event.Type == eventType {
			out = append(out, e.event)
		}
	}
	return out
}

type broadcast struct {
	matchID uuid.UUID
	frame   interface{}
}

type fakeBroadcaster struct {
	sent []broadcast
}

func (b *fakeBroadcaster) Broadcast(matchID uuid.UUID, v interface{}) {
	b.sent = append(b.sent, broadcast{matchID: matchID, frame: v})
}

// fakeTx serialises transactions so concurrent callers observe each other's writes.
type fakeTx struct {
	mu    sync.Mutex
	calls int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(ctx)
}

type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, key, _ string) (string, error) {
	return "https://bucket.local/" + key + "?X-Amz-Signature=put", nil
}

func (fakePresigner) PresignDownload(_ context.Context, key string) (string, error) {
	return "https://bucket.local/" + key + "?X-Amz-Signature=get", nil
}

// --- wiring ---

type testEnv struct {
	owners    *fakeOwnerRepo
	pets      *fakePetRepo
	breeds    *fakeBreedRepo
	criteria  *fakeCriteriaRepo
	searcher  *fakeSearcher
	likes     *fakeLikeeRepo
	matches   *fakeMatchRepo
	messages  *fakeMessageRepo
	contracts *fakeContractRepo
	photos    *fakePhotoRepo
	publisher *fakePublisher
	hub       *fakeBroadcaster
	tx        *fakeTx
}

func newTestEnv() *testEnv {
	return &testEnv{
		owners:    newFakeOwnerRepo(),
		pets:      newFakePetRepo(),
		breeds:    newFakeBreedRepo(),
		criteria:  newFakeCriteriaRepo(),
		searcher:  &fakeSearcher{},
		likes:     newFakeLikeeRepo(),
		matches:   newFakeMatchRepo(),
		messages:  &fakeMessageRepo{},
		contracts: newFakeContractRepo(),
		photos:    newFakePhotoRepo(),
		publisher: &fakePublisher{},
		hub:       &fakeBroadcaster{},
		tx:        &fakeTx{},
	}
}

func (e *testEnv) ownerService() *OwnerService {
	return NewOwnerService(e.owners, e.pets, e.matches, zap.NewNop())
}

func (e *testEnv) petService() *PetService {
	return NewPetService(e.pets, e.breeds, e.criteria, e.searcher, e.owners, zap.NewNop())
}

func (e *testEnv) likeService() *LikeService {
	return NewLikeService(e.likes, e.matches, e.pets, e.tx, e.publisher, zap.NewNop())
}

func (e *testEnv) matchService() *MatchService {
	return NewMatchService(e.matches, e.pets, zap.NewNop())
}

func (e *testEnv) chatService() *ChatService {
	return NewChatService(e.messages, e.matches, e.pets, e.publisher, e.hub, zap.NewNop())
}

func (e *testEnv) contractService() *ContractService {
	return NewContractService(e.contracts, e.matches, e.pets, e.tx, e.publisher, zap.NewNop())
}

func (e *testEnv) photoService() *PhotoService {
	return NewPhotoService(e.photos, e.pets, fakePresigner{}, zap.NewNop())
}

// matchedPair creates two owners with one pet each and a mutual like between them.
func (e *testEnv) matchedPair() (ownerA, ownerB uuid.UUID, m *matchDomain.Match) {
	ownerA, ownerB = uuid.New(), uuid.New()
	petA := e.pets.add(ownerA, "Luna", petDomain.SexFemale)
	petB := e.pets.add(ownerB, "Max", petDomain.SexMale)
	m = e.matches.add(petA.ID(), petB.ID(), time.Now().UTC())
	return ownerA, ownerB, m
}

func isValidation(err error) bool {
	var e *domain.ValidationError
	return errors.As(err, &e)
}

func isForbidden(err error) bool {
	var e *domain.ForbiddenError
	return errors.As(err, &e)
}

func isNotFound(err error) bool {
	var e *domain.NotFoundError
	return errors.As(err, &e)
}

func isConflict(err error) bool {
	var e *domain.ConflictError
	return errors.As(err, &e)
}
