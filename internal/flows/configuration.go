package flows

import (
	"context"

	"go.uber.org/zap"

	"github.com/hocvien-dev/timetable-console/internal/api"
	"github.com/hocvien-dev/timetable-console/internal/models"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

type configurationAPI interface {
	Configurations(ctx context.Context) ([]models.Configuration, error)
	UpdateConfiguration(ctx context.Context, name, value string) (*api.MutationResult, error)
}

// ConfigurationFlow edits the flat settings table sharing the scheduling
// screen. Restricted entries cannot be changed.
type ConfigurationFlow struct {
	api      configurationAPI
	notifier Notifier
	logger   *zap.Logger
}

// NewConfigurationFlow builds the flow.
func NewConfigurationFlow(client configurationAPI, notifier Notifier, logger *zap.Logger) *ConfigurationFlow {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigurationFlow{api: client, notifier: notifier, logger: logger}
}

// List loads the settings table grouped by application tag.
func (f *ConfigurationFlow) List(ctx context.Context) (map[string][]models.Configuration, error) {
	items, err := f.api.Configurations(ctx)
	if err != nil {
		f.notifier.Error(appErrors.FromError(err).Message)
		return nil, err
	}
	grouped := make(map[string][]models.Configuration)
	for _, item := range items {
		grouped[item.Application] = append(grouped[item.Application], item)
	}
	return grouped, nil
}

// Update edits one entry, refusing restricted ones before any request.
func (f *ConfigurationFlow) Update(ctx context.Context, item models.Configuration, value string) error {
	if item.IsRestricted {
		return reject(f.notifier, "Cấu hình này không thể chỉnh sửa")
	}
	if value == "" {
		return reject(f.notifier, appErrors.ErrValidation.Message)
	}
	result, err := f.api.UpdateConfiguration(ctx, item.Name, value)
	return finish(f.notifier, result, err)
}
