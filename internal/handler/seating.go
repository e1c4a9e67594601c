package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/jwc-dev/exam-scheduler/backend/internal/allocator"
	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

func (h *Handler) GenerateSeatingResult(w http.ResponseWriter, r *http.Request) {
	exam := r.Context().Value(ExamCtx).(*domain.Exam)

	// seed 为可选参数，不传时每次生成的座位顺序都不同
	var req struct {
		Seed *int64 `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	students, err := h.repository.GetAllStudents()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var alloc *allocator.Allocator
	if req.Seed != nil {
		alloc = allocator.NewWithSeed(exam, students, rooms, *req.Seed)
	} else {
		alloc = allocator.New(exam, students, rooms)
	}

	result, err := alloc.Allocate()
	if err != nil {
		var capacityErr *allocator.InsufficientCapacityError
		switch {
		case errors.Is(err, allocator.ErrNoEligibleStudents):
			h.errorResponse(w, r, err.Error())
		case errors.As(err, &capacityErr):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpsertSeatingResult(result); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "生成座位表成功", result)
}

func (h *Handler) GetSeatingResult(w http.ResponseWriter, r *http.Request) {
	exam := r.Context().Value(ExamCtx).(*domain.Exam)

	result, err := h.repository.GetSeatingResultByExamID(exam.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "这场考试还没有生成座位表", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取座位表成功", result)
}
