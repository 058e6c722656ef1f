package port

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPort is a testify mock of the Port interface for use in tests.
type MockPort struct {
	mock.Mock
}

var _ Port = (*MockPort)(nil)

func NewMockPort() *MockPort {
	return &MockPort{}
}

func (m *MockPort) Flush() error {
	return m.Called().Error(0)
}

func (m *MockPort) Write(p []byte) (int, error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockPort) ReadUntil(delim byte, max int) ([]byte, error) {
	args := m.Called(delim, max)

	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}

	return data, args.Error(1)
}

func (m *MockPort) SetReadTimeout(d time.Duration) {
	m.Called(d)
}

func (m *MockPort) Close() error {
	return m.Called().Error(0)
}
