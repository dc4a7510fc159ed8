package animals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/references"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/platform/paging"
	"animal-shelter/internal/ports/cache"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = apperr.NotFound("animal not found")
	ErrNotAccepting     = apperr.Conflict("this animal is not accepting likes or applications")
	ErrOnlyDraftDelete  = apperr.Conflict("only draft animals can be deleted")
	ErrPublishNotDraft  = apperr.Conflict("only draft animals can be published")
	ErrUnpublishNotLive = apperr.Conflict("only published animals can be unpublished")
)

// ReferenceChecker valida ids de especie/raza/color.
type ReferenceChecker interface {
	Expect(ctx context.Context, id string, kind references.Kind) (references.Reference, error)
}

// TagSource devuelve las características asignadas para el detalle público.
type TagSource interface {
	TagsForAnimal(ctx context.Context, animalID string) ([]Tag, error)
}

type Service struct {
	repo  Repository
	refs  ReferenceChecker
	tags  TagSource
	cache cache.Cache
	ttl   time.Duration
	reval *Revalidator
	log   logger.Logger
	now   func() time.Time
}

type Option func(*Service)

// WithCache activa cache-aside en las lecturas públicas.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithTagSource(ts TagSource) Option {
	return func(s *Service) { s.tags = ts }
}

func NewService(repo Repository, refs ReferenceChecker, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		refs: refs,
		ttl:  2 * time.Minute,
		log:  logger.NewNop(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.reval = NewRevalidator(s.cache, s.log)
	return s
}

// SetTagSource existe porque characteristics se construye después de animals.
func (s *Service) SetTagSource(ts TagSource) { s.tags = ts }

func (s *Service) Revalidator() *Revalidator { return s.reval }

type CreateInput struct {
	Name         string
	SpeciesID    string
	BreedID      string
	ColorID      string
	Sex          Sex
	BirthDate    *time.Time
	WeightKg     *float64
	HeightCm     *float64
	HealthStatus HealthStatus
	Location     string
	Description  string
}

// Prepare valida y arma un Animal DRAFT sin persistirlo.
// intakes lo usa para crear animal + ingreso en la misma transacción.
func (s *Service) Prepare(ctx context.Context, in CreateInput) (Animal, error) {
	fields := map[string][]string{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields["name"] = append(fields["name"], "is required")
	}
	if in.Sex == "" {
		in.Sex = SexUnknown
	}
	if !in.Sex.Valid() {
		fields["sex"] = append(fields["sex"], "must be MALE, FEMALE or UNKNOWN")
	}
	if in.HealthStatus == "" {
		in.HealthStatus = HealthHealthy
	}
	if !in.HealthStatus.Valid() {
		fields["health_status"] = append(fields["health_status"], "invalid health status")
	}
	checkMeasures(fields, in.BirthDate, in.WeightKg, in.HeightCm, s.now())

	if len(fields) > 0 {
		return Animal{}, apperr.Validation("invalid input", fields)
	}

	a := Animal{
		ID:           uuid.NewString(),
		Name:         name,
		SpeciesID:    strings.TrimSpace(in.SpeciesID),
		BreedID:      strings.TrimSpace(in.BreedID),
		ColorID:      strings.TrimSpace(in.ColorID),
		Sex:          in.Sex,
		BirthDate:    in.BirthDate,
		WeightKg:     in.WeightKg,
		HeightCm:     in.HeightCm,
		HealthStatus: in.HealthStatus,

		ListingStatus: ListingDraft,

		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.checkReferences(ctx, a); err != nil {
		return Animal{}, err
	}

	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	a, err := s.Prepare(ctx, in)
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.CreateAnimal(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateInput usa punteros: nil = no tocar. "" en ids opcionales o BirthDate
// con ClearBirthDate limpian el valor.
type UpdateInput struct {
	Name           *string
	SpeciesID      *string
	BreedID        *string
	ColorID        *string
	Sex            *Sex
	BirthDate      *time.Time
	ClearBirthDate bool
	WeightKg       *float64
	HeightCm       *float64
	HealthStatus   *HealthStatus
	Location       *string
	Description    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	fields := map[string][]string{}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			fields["name"] = append(fields["name"], "cannot be empty")
		}
		a.Name = n
	}
	if in.SpeciesID != nil {
		a.SpeciesID = strings.TrimSpace(*in.SpeciesID)
	}
	if in.BreedID != nil {
		a.BreedID = strings.TrimSpace(*in.BreedID)
	}
	if in.ColorID != nil {
		a.ColorID = strings.TrimSpace(*in.ColorID)
	}
	if in.Sex != nil {
		if !in.Sex.Valid() {
			fields["sex"] = append(fields["sex"], "must be MALE, FEMALE or UNKNOWN")
		}
		a.Sex = *in.Sex
	}
	if in.HealthStatus != nil {
		if !in.HealthStatus.Valid() {
			fields["health_status"] = append(fields["health_status"], "invalid health status")
		}
		a.HealthStatus = *in.HealthStatus
	}
	if in.ClearBirthDate {
		a.BirthDate = nil
	} else if in.BirthDate != nil {
		a.BirthDate = in.BirthDate
	}
	if in.WeightKg != nil {
		a.WeightKg = in.WeightKg
	}
	if in.HeightCm != nil {
		a.HeightCm = in.HeightCm
	}
	if in.Location != nil {
		a.Location = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	checkMeasures(fields, a.BirthDate, a.WeightKg, a.HeightCm, s.now())
	if len(fields) > 0 {
		return Animal{}, apperr.Validation("invalid input", fields)
	}
	if err := s.checkReferences(ctx, a); err != nil {
		return Animal{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.UpdateAnimal(ctx, a); err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Animal{}, ErrNotFound
		}
		return Animal{}, err
	}

	s.reval.Animals(ctx, a.ID)
	return a, nil
}

// Get (staff) incluye borradores y archivados.
func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	a, err := s.repo.GetAnimal(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Animal{}, ErrNotFound
		}
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (paging.Result[Animal], error) {
	q.Paging = q.Paging.Normalize()
	items, total, err := s.repo.ListAnimals(ctx, q)
	if err != nil {
		return paging.Result[Animal]{}, err
	}
	return paging.NewResult(items, total, q.Paging), nil
}

func (s *Service) Publish(ctx context.Context, id string) (Animal, error) {
	return s.moveListing(ctx, id, ListingDraft, ListingPublished, "publish", ErrPublishNotDraft)
}

func (s *Service) Unpublish(ctx context.Context, id string) (Animal, error) {
	return s.moveListing(ctx, id, ListingPublished, ListingDraft, "unpublish", ErrUnpublishNotLive)
}

func (s *Service) moveListing(ctx context.Context, id string, from, to ListingStatus, op string, conflict error) (Animal, error) {
	id = strings.TrimSpace(id)
	ok, err := s.repo.ConditionalUpdateListingStatus(ctx, ListingUpdate{
		AnimalID: id,
		From:     []ListingStatus{from},
		To:       to,
		At:       s.now(),
	})
	if err != nil {
		return Animal{}, err
	}
	if !ok {
		// Distinguir "no existe" de "estado distinto".
		if _, err := s.Get(ctx, id); err != nil {
			return Animal{}, err
		}
		metrics.ListingConflicts.WithLabelValues(op).Inc()
		return Animal{}, conflict
	}

	s.reval.Animals(ctx, id)
	return s.Get(ctx, id)
}

// Delete es soft delete y solo aplica a borradores.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	ok, err := s.repo.SoftDeleteAnimal(ctx, id, []ListingStatus{ListingDraft}, s.now())
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		metrics.ListingConflicts.WithLabelValues("delete").Inc()
		return ErrOnlyDraftDelete
	}
	s.reval.Animals(ctx, id)
	return nil
}

// Browse es el listado público: solo PUBLISHED y PENDING_ADOPTION.
func (s *Service) Browse(ctx context.Context, q ListQuery) (paging.Result[Animal], error) {
	q.Statuses = ListedStatuses
	q.Paging = q.Paging.Normalize()

	key := browseKey(q)
	gen := s.reval.Generation()
	var out paging.Result[Animal]
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	out, err := s.List(ctx, q)
	if err != nil {
		return paging.Result[Animal]{}, err
	}
	s.cacheSet(ctx, gen, key, out, TagCatalog)
	return out, nil
}

// PublicAnimal es el detalle público con sus características.
type PublicAnimal struct {
	Animal Animal
	Tags   []Tag
}

// GetListed devuelve el detalle público. Lo no listado es "no encontrado".
func (s *Service) GetListed(ctx context.Context, id string) (PublicAnimal, error) {
	id = strings.TrimSpace(id)
	key := "animals:detail:" + id
	gen := s.reval.Generation()

	var out PublicAnimal
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return PublicAnimal{}, err
	}
	if !a.ListingStatus.AcceptsApplications() {
		return PublicAnimal{}, ErrNotFound
	}

	out = PublicAnimal{Animal: a, Tags: []Tag{}}
	if s.tags != nil {
		tags, err := s.tags.TagsForAnimal(ctx, id)
		if err != nil {
			return PublicAnimal{}, err
		}
		out.Tags = tags
	}

	s.cacheSet(ctx, gen, key, out, TagCatalog, TagAnimal(id))
	return out, nil
}

// Like es idempotente.
func (s *Service) Like(ctx context.Context, animalID, userID string) error {
	a, err := s.Get(ctx, animalID)
	if err != nil {
		return err
	}
	if !a.ListingStatus.AcceptsApplications() {
		return ErrNotAccepting
	}
	return s.repo.AddLike(ctx, Like{AnimalID: a.ID, UserID: userID, CreatedAt: s.now()})
}

func (s *Service) Unlike(ctx context.Context, animalID, userID string) error {
	return s.repo.RemoveLike(ctx, strings.TrimSpace(animalID), userID)
}

func (s *Service) Liked(ctx context.Context, userID string) ([]Animal, error) {
	return s.repo.ListLikedAnimals(ctx, userID)
}

func (s *Service) checkReferences(ctx context.Context, a Animal) error {
	fields := map[string][]string{}

	var species references.Reference
	if a.SpeciesID == "" {
		fields["species_id"] = []string{"is required"}
	} else {
		ref, err := s.refs.Expect(ctx, a.SpeciesID, references.KindSpecies)
		if err != nil {
			if !apperr.Is(err, apperr.KindNotFound) {
				return err
			}
			fields["species_id"] = []string{"species not found"}
		}
		species = ref
	}

	if a.BreedID != "" {
		breed, err := s.refs.Expect(ctx, a.BreedID, references.KindBreed)
		switch {
		case apperr.Is(err, apperr.KindNotFound):
			fields["breed_id"] = []string{"breed not found"}
		case err != nil:
			return err
		case species.ID != "" && breed.ParentID != species.ID:
			fields["breed_id"] = []string{"breed does not belong to species"}
		}
	}

	if a.ColorID != "" {
		if _, err := s.refs.Expect(ctx, a.ColorID, references.KindColor); err != nil {
			if !apperr.Is(err, apperr.KindNotFound) {
				return err
			}
			fields["color_id"] = []string{"color not found"}
		}
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid input", fields)
	}
	return nil
}

func checkMeasures(fields map[string][]string, birth *time.Time, weight, height *float64, now time.Time) {
	if birth != nil && birth.After(now) {
		fields["birth_date"] = append(fields["birth_date"], "cannot be in the future")
	}
	if weight != nil && *weight < 0 {
		fields["weight_kg"] = append(fields["weight_kg"], "must be >= 0")
	}
	if height != nil && *height < 0 {
		fields["height_cm"] = append(fields["height_cm"], "must be >= 0")
	}
}

func browseKey(q ListQuery) string {
	return fmt.Sprintf("animals:browse:%s|%s|%s|%s|%s|%t|%d|%d",
		q.SpeciesID, q.Sex, q.HealthStatus, strings.ToLower(strings.TrimSpace(q.Search)),
		q.Sort, q.Desc, q.Paging.Page, q.Paging.PageSize)
}

func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache get failed", map[string]any{"key": key, "error": err})
		return false
	}
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// cacheSet descarta el valor si hubo invalidaciones desde gen.
func (s *Service) cacheSet(ctx context.Context, gen uint64, key string, v any, tags ...string) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.reval.fill(gen, func() {
		if err := s.cache.Set(ctx, key, raw, s.ttl, tags...); err != nil {
			s.log.Warn("cache set failed", map[string]any{"key": key, "error": err})
		}
	})
}
