package models

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// Request модели

// GetScheduleWaitlistRequest запрос на получение листа ожидания занятия
type GetScheduleWaitlistRequest struct {
	Actor      domain.Actor
	ScheduleID int64
}

// GetUserWaitlistRequest запрос на получение записей пользователя
type GetUserWaitlistRequest struct {
	Actor  domain.Actor
	UserID int64
}

// Response модели

// EntryResponse ответ с данными записи листа ожидания
type EntryResponse struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	ScheduleID int64 `json:"scheduleId"`
	Position   int   `json:"position"`

	Notified   bool    `json:"notified"`
	NotifiedAt *string `json:"notifiedAt,omitempty"` // ISO 8601 format
	ExpiresAt  *string `json:"expiresAt,omitempty"`  // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
}

// EntryListResponse ответ со списком записей
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitingListEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		ScheduleID: e.ScheduleID,
		Position:   e.Position,
		Notified:   e.Notified,
		CreatedAt:  e.CreatedAt,
	}

	if e.NotifiedAt != nil {
		notifiedStr := e.NotifiedAt.Format(time.RFC3339)
		resp.NotifiedAt = &notifiedStr
	}
	if e.ExpiresAt != nil {
		expiresStr := e.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	return resp
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitingListEntry) *EntryListResponse {
	if entries == nil {
		return &EntryListResponse{
			Entries: []EntryResponse{},
		}
	}

	resp := &EntryListResponse{
		Entries: make([]EntryResponse, len(entries)),
	}

	for i, entry := range entries {
		if entryResp := FromDomainEntry(entry); entryResp != nil {
			resp.Entries[i] = *entryResp
		}
	}

	return resp
}
