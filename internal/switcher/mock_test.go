package switcher

import (
	"context"

	"github.com/connorhough/imeswitch/internal/tsf"
)

type MockManager struct {
	Installed []tsf.InstalledProfile
	Active    tsf.InstalledProfile

	ActivateErr error
	ProfilesErr error
	ActiveErr   error

	Activated []tsf.InstalledProfile
	Flags     []tsf.ActivateFlags
	Closed    int
}

func (m *MockManager) Profiles(ctx context.Context) ([]tsf.InstalledProfile, error) {
	if m.ProfilesErr != nil {
		return nil, m.ProfilesErr
	}
	return m.Installed, nil
}

func (m *MockManager) ActiveProfile(ctx context.Context) (tsf.InstalledProfile, error) {
	if m.ActiveErr != nil {
		return tsf.InstalledProfile{}, m.ActiveErr
	}
	return m.Active, nil
}

func (m *MockManager) Activate(ctx context.Context, p tsf.InstalledProfile, flags tsf.ActivateFlags) error {
	if m.ActivateErr != nil {
		return m.ActivateErr
	}
	m.Activated = append(m.Activated, p)
	m.Flags = append(m.Flags, flags)
	return nil
}

func (m *MockManager) Close() error {
	m.Closed++
	return nil
}

func (m *MockManager) Opener() tsf.Opener {
	return func(context.Context) (tsf.Manager, error) {
		return m, nil
	}
}

// Ensure MockManager satisfies the Manager interface
var _ tsf.Manager = &MockManager{}
