package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	domauth "github.com/tu-usuario/railparts-api/internal/domain/auth"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// TripUseCase comisiones de servicio. El informe nace en borrador, el dueño lo
// envía y un supervisor o admin lo aprueba.
type TripUseCase struct {
	repo repository.TripRepository
}

// NewTripUseCase construye el caso de uso.
func NewTripUseCase(repo repository.TripRepository) *TripUseCase {
	return &TripUseCase{repo: repo}
}

// Create registra una comisión en estado borrador para el actor.
func (uc *TripUseCase) Create(actor domauth.Actor, in dto.CreateTripRequest) (*dto.TripResponse, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	if in.Expenses.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	trip := &entity.BusinessTrip{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		Destination: in.Destination,
		Purpose:     in.Purpose,
		StartDate:   start,
		EndDate:     end,
		Expenses:    in.Expenses,
		Status:      entity.TripStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(trip); err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

// Update modifica una comisión. El dueño edita y envía; aprobar exige el
// permiso de aprobación y una vez aprobada queda inmutable.
func (uc *TripUseCase) Update(actor domauth.Actor, id string, in dto.UpdateTripRequest) (*dto.TripResponse, error) {
	trip, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, nil
	}
	if !domauth.Can(actor, domauth.ActionTripWrite, trip.UserID) {
		return nil, domain.ErrForbidden
	}
	if trip.Status == entity.TripStatusApproved {
		return nil, domain.ErrConflict
	}
	if in.Status != nil && *in.Status == entity.TripStatusApproved {
		if !domauth.Can(actor, domauth.ActionTripApprove, trip.UserID) {
			return nil, domain.ErrForbidden
		}
		if trip.Status != entity.TripStatusSubmitted {
			return nil, domain.ErrConflict
		}
	}
	if in.Destination != nil {
		trip.Destination = *in.Destination
	}
	if in.Purpose != nil {
		trip.Purpose = *in.Purpose
	}
	if in.StartDate != nil {
		start, err := time.Parse(dateLayout, *in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		trip.StartDate = start
	}
	if in.EndDate != nil {
		end, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		trip.EndDate = end
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Expenses != nil {
		if in.Expenses.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		trip.Expenses = *in.Expenses
	}
	if in.Report != nil {
		trip.Report = *in.Report
	}
	if in.Status != nil {
		trip.Status = *in.Status
	}
	trip.UpdatedAt = time.Now()
	if err := uc.repo.Update(trip); err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

// GetByID obtiene una comisión por ID.
func (uc *TripUseCase) GetByID(id string) (*dto.TripResponse, error) {
	trip, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, nil
	}
	return toTripResponse(trip), nil
}

// List lista comisiones con filtros opcionales de usuario y estado.
func (uc *TripUseCase) List(userID, status string, page dto.PageRequest) ([]dto.TripResponse, error) {
	page.DefaultPage()
	trips, err := uc.repo.List(userID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, *toTripResponse(t))
	}
	return out, nil
}

func toTripResponse(t *entity.BusinessTrip) *dto.TripResponse {
	return &dto.TripResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Destination: t.Destination,
		Purpose:     t.Purpose,
		StartDate:   t.StartDate.Format(dateLayout),
		EndDate:     t.EndDate.Format(dateLayout),
		Expenses:    t.Expenses,
		Report:      t.Report,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
