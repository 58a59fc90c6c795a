package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PicklePlay-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PicklePlay-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - клиент может видеть только своё бронирование,
// администратор — любое
func (s *Service) GetByID(ctx context.Context, id string, customerID string, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for customer=%s", id, customerID)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && booking.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%s to booking id=%s", customerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента (сначала новые)
func (s *Service) GetCustomerBookings(ctx context.Context, customerID string) (*models.BookingListResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с фильтрацией для админ-панели
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// SetPaymentStatus меняет статус оплаты бронирования (админ-операция).
// Отметка об оплате подтверждает бронирование: оплаченное бронирование
// не может оставаться pending.
func (s *Service) SetPaymentStatus(ctx context.Context, id string, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error) {
	paymentStatus, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("SetPaymentStatus: invalid status=%s for booking id=%s", req.PaymentStatus, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	bookingStatus := booking.BookingStatus
	if paymentStatus == domain.PaymentPaid {
		bookingStatus = domain.BookingConfirmed
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, paymentStatus, bookingStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("SetPaymentStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetPaymentStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetPaymentStatus: booking id=%s payment=%s booking=%s", id, paymentStatus, bookingStatus)

	updated, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование и освобождает его слоты (админ-операция).
// Обе записи меняются в одной транзакции: нельзя оставить занятые слоты
// без бронирования или наоборот.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	if _, err := s.loadBooking(ctx, id); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.slotRepo.ReleaseByBooking(ctx, id); err != nil {
			return err
		}
		return s.bookingRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to delete booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted, slots released", id)
	return nil
}

// loadBooking загружает бронирование, мапя ошибку отсутствия
func (s *Service) loadBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("loadBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("loadBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: loadBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}
