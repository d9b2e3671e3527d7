package service

import (
	"context"
	"testing"
	"time"

	"vetvox-be/internal/dto"
	"vetvox-be/internal/entity"
	"vetvox-be/internal/pkg/apperrors"
	"vetvox-be/internal/repository/contract"
	"vetvox-be/internal/repository/specification"
	"vetvox-be/internal/repository/unitofwork"
	"vetvox-be/internal/vocab"
	"vetvox-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisitRepository struct {
	visits  []*entity.Visit
	created []*entity.Visit
	updated []*entity.Visit
	findErr error
}

func (r *fakeVisitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	r.created = append(r.created, visit)
	r.visits = append(r.visits, visit)
	return nil
}

func (r *fakeVisitRepository) Update(ctx context.Context, visit *entity.Visit) error {
	r.updated = append(r.updated, visit)
	return nil
}

func (r *fakeVisitRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visit, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, spec := range specs {
		if byId, ok := spec.(specification.ById); ok {
			for _, v := range r.visits {
				if v.Id == byId.Id {
					return v, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeVisitRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visit, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.visits, nil
}

func (r *fakeVisitRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.visits)), nil
}

type fakeUnitOfWork struct {
	repo *fakeVisitRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error           { return nil }
func (u *fakeUnitOfWork) Commit() error                             { return nil }
func (u *fakeUnitOfWork) Rollback() error                           { return nil }
func (u *fakeUnitOfWork) VisitRepository() contract.VisitRepository { return u.repo }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type capturedPublish struct {
	topic   string
	payload []byte
}

type fakeBusPublisher struct {
	published []capturedPublish
}

func (p *fakeBusPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.published = append(p.published, capturedPublish{topic: topic, payload: payload})
	return nil
}

func newTestVisitService() (IVisitService, *fakeVisitRepository, *fakeBusPublisher) {
	repo := &fakeVisitRepository{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{repo: repo}}
	bus := &fakeBusPublisher{}
	svc := NewVisitService(factory, extract.NewKeywordStrategy(), bus, nil)
	return svc, repo, bus
}

func TestCreateVisit(t *testing.T) {
	svc, repo, bus := newTestVisitService()

	res, err := svc.Create(context.Background(), &dto.CreateVisitRequest{
		VetName:     "DR_SMITH",
		PatientName: "MAX",
		Species:     "DOG",
		Medications: []string{"AMOXICILLIN"},
		Notes:       "ear infection",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.Id)
	assert.Equal(t, "DR_SMITH", res.VetName)
	assert.Equal(t, []string{"AMOXICILLIN"}, res.Medications)
	assert.WithinDuration(t, time.Now(), res.VisitDate, time.Second)
	assert.Nil(t, res.UpdatedAt)

	require.Len(t, repo.created, 1)
	require.Len(t, bus.published, 1)
	assert.Equal(t, "visit.created", bus.published[0].topic)
}

func TestCreateVisitRejectsInvalidEnums(t *testing.T) {
	svc, repo, _ := newTestVisitService()

	tests := []struct {
		name string
		req  dto.CreateVisitRequest
	}{
		{"invalid vet", dto.CreateVisitRequest{VetName: "DR_WHO", PatientName: "MAX", Species: "DOG"}},
		{"sentinel vet", dto.CreateVisitRequest{VetName: "UNKNOWN", PatientName: "MAX", Species: "DOG"}},
		{"invalid patient", dto.CreateVisitRequest{VetName: "DR_SMITH", PatientName: "REX", Species: "DOG"}},
		{"invalid species", dto.CreateVisitRequest{VetName: "DR_SMITH", PatientName: "MAX", Species: "DRAGON"}},
		{"invalid medication", dto.CreateVisitRequest{VetName: "DR_SMITH", PatientName: "MAX", Species: "DOG", Medications: []string{"ASPIRIN"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			var valErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}

	assert.Empty(t, repo.created)
}

func TestCreateVisitAcceptsNoneMedicationAsEmpty(t *testing.T) {
	svc, repo, _ := newTestVisitService()

	// Analyze prefills the form with NONE when nothing was prescribed;
	// submitting that payload unchanged must round-trip.
	res, err := svc.Create(context.Background(), &dto.CreateVisitRequest{
		VetName:     "DR_BROWN",
		PatientName: "LUNA",
		Species:     "CHICKEN",
		Medications: []string{"NONE"},
		Notes:       "routine wellness check",
	})
	require.NoError(t, err)

	assert.Empty(t, res.Medications)
	require.Len(t, repo.created, 1)
	assert.Empty(t, repo.created[0].Medications)
}

func TestListVisits(t *testing.T) {
	svc, repo, _ := newTestVisitService()

	now := time.Now()
	repo.visits = []*entity.Visit{
		{Id: uuid.New(), VetName: vocab.VetDrDavis, PatientName: vocab.PatientRocky, Species: vocab.SpeciesMonkey,
			Medications: []vocab.Medication{vocab.MedKetamine}, VisitDate: now},
		{Id: uuid.New(), VetName: vocab.VetDrSmith, PatientName: vocab.PatientMax, Species: vocab.SpeciesDog,
			Medications: []vocab.Medication{}, VisitDate: now.Add(-time.Hour)},
	}

	res, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "DR_DAVIS", res[0].VetName)
	assert.Equal(t, []string{"KETAMINE"}, res[0].Medications)
}

func TestUpdateNotes(t *testing.T) {
	svc, repo, bus := newTestVisitService()

	id := uuid.New()
	repo.visits = []*entity.Visit{
		{Id: id, VetName: vocab.VetDrSmith, PatientName: vocab.PatientMax, Species: vocab.SpeciesDog,
			Notes: "old notes", VisitDate: time.Now().Add(-time.Hour)},
	}

	newNotes := "corrected notes"
	res, err := svc.UpdateNotes(context.Background(), &dto.UpdateVisitNotesRequest{Id: id, Notes: &newNotes})
	require.NoError(t, err)

	assert.Equal(t, "corrected notes", res.Notes)
	require.NotNil(t, res.UpdatedAt)
	require.Len(t, repo.updated, 1)
	require.Len(t, bus.published, 1)
	assert.Equal(t, "visit.notes_updated", bus.published[0].topic)
}

func TestUpdateNotesAllowsExplicitEmpty(t *testing.T) {
	svc, repo, _ := newTestVisitService()

	id := uuid.New()
	repo.visits = []*entity.Visit{
		{Id: id, VetName: vocab.VetDrSmith, PatientName: vocab.PatientMax, Species: vocab.SpeciesDog,
			Notes: "something", VisitDate: time.Now()},
	}

	empty := ""
	res, err := svc.UpdateNotes(context.Background(), &dto.UpdateVisitNotesRequest{Id: id, Notes: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", res.Notes)
}

func TestUpdateNotesNotFound(t *testing.T) {
	svc, _, _ := newTestVisitService()

	notes := "whatever"
	_, err := svc.UpdateNotes(context.Background(), &dto.UpdateVisitNotesRequest{Id: uuid.New(), Notes: &notes})
	var nfErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestAnalyze(t *testing.T) {
	svc, _, _ := newTestVisitService()

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeVisitRequest{
		TranscribedNotes: "Dr. Brown saw Bella the chicken and prescribed LSD",
	})
	require.NoError(t, err)

	assert.Equal(t, "DR_BROWN", res.VetName)
	assert.Equal(t, "BELLA", res.PatientName)
	assert.Equal(t, "CHICKEN", res.Species)
	assert.Equal(t, []string{"LSD"}, res.Medications)
	assert.False(t, res.LowConfidence)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	svc, _, _ := newTestVisitService()

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeVisitRequest{TranscribedNotes: ""})
	assert.ErrorIs(t, err, extract.ErrEmptyInput)
}
