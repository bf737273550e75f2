package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingEvent отправляет событие по бронированию
func (c *Client) SendBookingEvent(ctx context.Context, notification BookingNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/bookings", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendBookingEventWithGracefulDegradation отправляет событие с graceful degradation
// При недоступности NotifyService возвращает ErrServiceDegraded - бронирование
// не должно падать из-за потерянного уведомления
func (c *Client) SendBookingEventWithGracefulDegradation(ctx context.Context, notification BookingNotification) error {
	c.log.Info("Sending booking notification booking_id=%d event=%s", notification.BookingID, notification.Event)

	if err := c.SendBookingEvent(ctx, notification); err != nil {
		// Для всех ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("NotifyService unavailable, applying graceful degradation for booking_id=%d: %v", notification.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, notification.BookingID, err)
	}

	c.log.Info("Successfully sent booking notification booking_id=%d event=%s", notification.BookingID, notification.Event)
	return nil
}
