package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/jwc-dev/exam-scheduler/backend/internal/pipeline"
	"github.com/jwc-dev/exam-scheduler/backend/internal/scheduler"
	amqp "github.com/rabbitmq/amqp091-go"
)

const dutyRosterLockKey = "lock_duty_roster_generate"

func (h *Handler) GenerateDutyRoster(w http.ResponseWriter, r *http.Request) {
	// 获取参数，不传的参数使用配置中的默认值
	var req struct {
		MaxDutiesPerCycle       *int32   `json:"maxDutiesPerCycle" validate:"omitempty,min=1"`
		RelieverThresholdHours  *float64 `json:"relieverThresholdHours" validate:"omitempty,gt=0"`
		LongExamThresholdHours  *float64 `json:"longExamThresholdHours" validate:"omitempty,gt=0"`
		RestrictFemaleLongExams *bool    `json:"restrictFemaleLongExams"`
		Seed                    *int64   `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 排班是全量替换操作，用 redis 锁防止两个管理员同时生成
	lockCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	locked, err := h.redisClient.SetNX(lockCtx, dutyRosterLockKey, 1, time.Duration(h.config.GenerationLock.Expiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "已有排班任务正在进行，请稍后再试")
		return
	}
	defer func() {
		if err := h.redisClient.Del(context.Background(), dutyRosterLockKey).Err(); err != nil {
			slog.Error("无法释放排班锁", "error", err)
		}
	}()

	// 构建参数
	parameters := &scheduler.Parameters{
		MaxDutiesPerCycle:       h.config.Duty.MaxDutiesPerCycle,
		RelieverThresholdHours:  h.config.Duty.RelieverThresholdHours,
		LongExamThresholdHours:  h.config.Duty.LongExamThresholdHours,
		RestrictFemaleLongExams: h.config.Duty.RestrictFemaleLongExams,
		LoadWeight:              scheduler.DefaultParameters().LoadWeight,
		AdjacentShiftWeight:     scheduler.DefaultParameters().AdjacentShiftWeight,
		RepeatRoomWeight:        scheduler.DefaultParameters().RepeatRoomWeight,
	}
	if req.MaxDutiesPerCycle != nil {
		parameters.MaxDutiesPerCycle = *req.MaxDutiesPerCycle
	}
	if req.RelieverThresholdHours != nil {
		parameters.RelieverThresholdHours = *req.RelieverThresholdHours
	}
	if req.LongExamThresholdHours != nil {
		parameters.LongExamThresholdHours = *req.LongExamThresholdHours
	}
	if req.RestrictFemaleLongExams != nil {
		parameters.RestrictFemaleLongExams = *req.RestrictFemaleLongExams
	}

	// 获取排班所需的全部数据
	exams, err := h.repository.GetAllExams()
	if err != nil {
		h.internalServerError(w, r, err)
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

	teachers, err := h.repository.GetAllTeachers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 先分配所有考试的座位，再对整个考试周期做一次监考排班
	pl := pipeline.New(parameters, exams, students, rooms, teachers)
	if req.Seed != nil {
		pl = pl.WithSeed(*req.Seed)
	}

	result, err := pl.Run()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 保存生成的座位表和监考安排
	for _, seating := range result.SeatingResults {
		if err := h.repository.UpsertSeatingResult(seating); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	if err := h.repository.ReplaceDutyRoster(result.Roster); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 给每位有监考任务的老师发送通知邮件
	if err := h.publishDutyNotices(result.Roster, teachers, exams, rooms); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "生成监考安排成功", result)
}

func (h *Handler) publishDutyNotices(roster *domain.DutyRoster, teachers []*domain.Teacher, exams []*domain.Exam, rooms []*domain.Room) error {
	teacherMap := make(map[int64]*domain.Teacher)
	for _, teacher := range teachers {
		teacherMap[teacher.ID] = teacher
	}
	examMap := make(map[int64]*domain.Exam)
	for _, exam := range exams {
		examMap[exam.ID] = exam
	}
	roomMap := make(map[int64]*domain.Room)
	for _, room := range rooms {
		roomMap[room.ID] = room
	}

	// 按老师汇总监考任务，每位老师只发一封邮件
	duties := make(map[int64][]domain.DutyNoticeItem)
	for _, assignment := range roster.Assignments {
		exam := examMap[assignment.Slot.ExamID]
		room := roomMap[assignment.Slot.RoomID]

		duties[assignment.TeacherID] = append(duties[assignment.TeacherID], domain.DutyNoticeItem{
			SubjectName: exam.SubjectName,
			RoomNumber:  room.Number,
			Date:        assignment.Slot.Date.Format("2006-01-02"),
			StartTime:   exam.StartTime,
			EndTime:     exam.EndTime,
			DutyType:    string(assignment.Slot.Type),
		})
	}

	for teacherID, items := range duties {
		teacher := teacherMap[teacherID]

		mailMessage := domain.MailMessage{
			Type: "duty_notice",
			To:   teacher.Email,
			Data: domain.DutyNoticeMailData{
				FullName: teacher.FullName,
				Duties:   items,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)

		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"duty_notice_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) GetDutyRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.repository.GetDutyRoster()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "还没有生成监考安排", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取监考安排成功", roster)
}
