package holiday

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/utils"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
	}
}

// List implements holiday.HolidayService.
func (h *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := h.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(hd))
	}
	return responses, nil
}

// Create implements holiday.HolidayService.
func (h *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}

	var description *string
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		d := strings.TrimSpace(*req.Description)
		description = &d
	}

	created, err := h.HolidayRepository.Create(ctx, holiday.Holiday{
		Date:        date,
		Name:        strings.TrimSpace(req.Name),
		Description: description,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.NewHolidayResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (h *HolidayServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return holiday.ErrHolidayNotFound
	}
	return h.HolidayRepository.Delete(ctx, id)
}

// IsHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	exists, err := h.HolidayRepository.ExistsOn(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}
