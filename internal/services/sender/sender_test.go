package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avdeevns/expense-tracker/internal/lib/smtp"
	"github.com/avdeevns/expense-tracker/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) SenderAddress() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService(transport *MockTransport) *SenderService {
	return New(transport, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func resetEmailBody(t *testing.T) []byte {
	body, err := json.Marshal(models.ResetEmail{
		Email:     "alice@example.com",
		Name:      "alice",
		ResetLink: "http://localhost:3000/reset-password/token-1",
	})
	require.NoError(t, err)
	return body
}

func TestSenderService_SendPasswordReset(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)
	svc := newTestService(transport)

	transport.On("SenderAddress").Return("noreply@expense-tracker.io")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "noreply@expense-tracker.io").Return(nil)
	client.On("Rcpt", "alice@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	writer.On("Write", mock.Anything).Return(0, nil)
	writer.On("Close").Return(nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	err := svc.SendPasswordReset(resetEmailBody(t))

	require.NoError(t, err)
	assert.Contains(t, string(writer.written), "http://localhost:3000/reset-password/token-1")
	assert.Contains(t, string(writer.written), "Subject: Сброс пароля")
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_SendPasswordReset_InvalidJSON(t *testing.T) {
	transport := new(MockTransport)
	svc := newTestService(transport)

	err := svc.SendPasswordReset([]byte("not-json"))

	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSenderService_SendPasswordReset_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	svc := newTestService(transport)

	transport.On("SenderAddress").Return("noreply@expense-tracker.io")
	transport.On("Connect").Return(nil, errors.New("dial tcp: connection refused"))

	err := svc.SendPasswordReset(resetEmailBody(t))

	assert.Error(t, err)
}
