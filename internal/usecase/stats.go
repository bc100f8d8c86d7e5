package usecase

import (
	"context"

	"skillmap-service/internal/domain"
)

// StatsUseCase реализует бизнес-логику сводной статистики.
type StatsUseCase struct {
	statsRepo domain.StatsRepository
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
func NewStatsUseCase(statsRepo domain.StatsRepository) domain.StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
	}
}

// GetAdminStats возвращает сводные счетчики системы. Только для администратора.
func (uc *StatsUseCase) GetAdminStats(ctx context.Context, actor *domain.User) (*domain.AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return uc.statsRepo.GetAdminStats(ctx)
}
