package health

// Service encapsulates health-related checks.
type Service struct {
	env      string
	mockMode bool
}

// NewService constructs a new health service.
func NewService(env string, mockMode bool) *Service {
	return &Service{env: env, mockMode: mockMode}
}

// Status returns the liveness payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":       true,
		"env":      s.env,
		"mockMode": s.mockMode,
	}
}
