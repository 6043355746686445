package ports

import (
	"context"

	"github.com/bnema/toolrental/internal/domain"
)

type ConfigRepository interface {
	Load(ctx context.Context) (domain.Config, error)
}
