package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CustomerLookup источник контактного профиля клиента: в бронировании
// лежит снапшот имени и email, телефон хранится только в профиле
type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// Client клиент почтового сервиса (EmailJS-совместимый API).
// Отправка подтверждения не критична для бронирования: все ошибки
// здесь — предупреждения, а не причина отката.
type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	userID     string
	customers  CustomerLookup
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, serviceID, templateID, userID string, customers CustomerLookup, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceID:  serviceID,
		templateID: templateID,
		userID:     userID,
		customers:  customers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendBookingConfirmation отправляет письмо-подтверждение по снапшоту
// бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, b *domain.Booking) error {
	times := make([]string, len(b.Slots))
	for i, s := range b.Slots {
		times[i] = fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
	}

	// Телефон берем из профиля; его отсутствие не мешает отправке
	phone := ""
	if profile, err := c.customers.GetByID(ctx, b.CustomerID); err != nil {
		c.log.Warn("SendBookingConfirmation: failed to load customer %s: %v", b.CustomerID, err)
	} else if profile.Phone != nil {
		phone = *profile.Phone
	}

	payload := sendRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.userID,
		TemplateParams: map[string]string{
			"to_email":       b.CustomerEmail,
			"customer_name":  b.CustomerName,
			"customer_phone": phone,
			"booking_id":     b.ID,
			"booking_date":   domain.FormatDate(b.Date),
			"slot_times":     strings.Join(times, ", "),
			"total_amount":   fmt.Sprintf("%.0f", b.TotalAmount),
			"payment_method": string(b.PaymentMethod),
			"payment_status": string(b.PaymentStatus),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal send request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/api/v1.0/email/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	c.log.Info("Confirmation email sent: booking_id=%s, to=%s", b.ID, b.CustomerEmail)
	return nil
}
