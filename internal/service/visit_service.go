package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vetvox-be/internal/dto"
	"vetvox-be/internal/entity"
	"vetvox-be/internal/pkg/apperrors"
	"vetvox-be/internal/repository/specification"
	"vetvox-be/internal/repository/unitofwork"
	"vetvox-be/internal/vocab"
	"vetvox-be/pkg/events"
	"vetvox-be/pkg/extract"
	pkgNats "vetvox-be/pkg/nats"

	"github.com/google/uuid"
)

type IVisitService interface {
	Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
	List(ctx context.Context) ([]*dto.VisitResponse, error)
	UpdateNotes(ctx context.Context, req *dto.UpdateVisitNotesRequest) (*dto.VisitResponse, error)
	Analyze(ctx context.Context, req *dto.AnalyzeVisitRequest) (*dto.VisitAnalysisResponse, error)
}

type visitService struct {
	uowFactory       unitofwork.RepositoryFactory
	extractor        extract.Strategy
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
}

func NewVisitService(
	uowFactory unitofwork.RepositoryFactory,
	extractor extract.Strategy,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
) IVisitService {
	return &visitService{
		uowFactory:       uowFactory,
		extractor:        extractor,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *visitService) Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	vetName := vocab.VetName(req.VetName)
	if !vetName.Valid() {
		return nil, apperrors.Validation("unknown vet name: %s", req.VetName)
	}
	patientName := vocab.PatientName(req.PatientName)
	if !patientName.Valid() {
		return nil, apperrors.Validation("unknown patient name: %s", req.PatientName)
	}
	species := vocab.Species(req.Species)
	if !species.Valid() {
		return nil, apperrors.Validation("unknown species: %s", req.Species)
	}

	meds := make([]vocab.Medication, 0, len(req.Medications))
	for _, m := range req.Medications {
		med := vocab.Medication(m)
		if med == vocab.MedNone {
			// Analyze reports "no medications" as NONE; submitting that
			// payload back means an empty list.
			continue
		}
		if !med.Valid() {
			return nil, apperrors.Validation("unknown medication: %s", m)
		}
		meds = append(meds, med)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	visit := entity.Visit{
		Id:          uuid.New(),
		VetName:     vetName,
		PatientName: patientName,
		Species:     species,
		Medications: meds,
		Notes:       req.Notes,
		VisitDate:   time.Now(),
	}

	if err := uow.VisitRepository().Create(ctx, &visit); err != nil {
		return nil, err
	}

	s.publish(ctx, events.VisitCreated(visit.Id.String(), string(visit.VetName), string(visit.PatientName)))

	return toVisitResponse(&visit), nil
}

func (s *visitService) List(ctx context.Context) ([]*dto.VisitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visits, err := uow.VisitRepository().FindAll(ctx, specification.NewestFirst{})
	if err != nil {
		return nil, err
	}

	response := make([]*dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		response = append(response, toVisitResponse(v))
	}
	return response, nil
}

func (s *visitService) UpdateNotes(ctx context.Context, req *dto.UpdateVisitNotesRequest) (*dto.VisitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visit, err := uow.VisitRepository().FindOne(ctx, specification.ById{Id: req.Id})
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperrors.NotFound("visit", req.Id.String())
	}

	now := time.Now()
	visit.Notes = *req.Notes
	visit.UpdatedAt = &now

	if err := uow.VisitRepository().Update(ctx, visit); err != nil {
		return nil, err
	}

	s.publish(ctx, events.VisitNotesUpdated(visit.Id.String()))

	return toVisitResponse(visit), nil
}

func (s *visitService) Analyze(ctx context.Context, req *dto.AnalyzeVisitRequest) (*dto.VisitAnalysisResponse, error) {
	analysis, err := s.extractor.Extract(ctx, req.TranscribedNotes)
	if err != nil {
		return nil, err
	}

	meds := make([]string, 0, len(analysis.Medications))
	for _, m := range analysis.Medications {
		meds = append(meds, string(m))
	}
	if len(meds) == 0 {
		meds = []string{string(vocab.MedNone)}
	}

	return &dto.VisitAnalysisResponse{
		VetName:       string(analysis.VetName),
		PatientName:   string(analysis.PatientName),
		Species:       string(analysis.Species),
		Medications:   meds,
		Notes:         analysis.Notes,
		Confidence:    analysis.Confidence,
		LowConfidence: analysis.LowConfidence(),
	}, nil
}

// publish hands the event to the in-process bus (dashboard fanout) and the
// NATS stream (external systems). Neither failure fails the request; the
// visit is already persisted.
func (s *visitService) publish(ctx context.Context, evt events.Event) {
	if s.publisherService != nil {
		payload, err := json.Marshal(evt.Payload())
		if err == nil {
			if err := s.publisherService.Publish(ctx, evt.EventType(), payload); err != nil {
				fmt.Printf("[WARN] Failed to publish %s to local bus: %v\n", evt.EventType(), err)
			}
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
		}
	}
}

func toVisitResponse(v *entity.Visit) *dto.VisitResponse {
	meds := make([]string, len(v.Medications))
	for i, m := range v.Medications {
		meds[i] = string(m)
	}
	return &dto.VisitResponse{
		Id:          v.Id,
		VetName:     string(v.VetName),
		PatientName: string(v.PatientName),
		Species:     string(v.Species),
		Medications: meds,
		Notes:       v.Notes,
		VisitDate:   v.VisitDate,
		UpdatedAt:   v.UpdatedAt,
	}
}
