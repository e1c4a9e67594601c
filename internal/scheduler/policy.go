package scheduler

import (
	"fmt"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

// DefaultPolicy 组装默认的硬约束和软评分
func DefaultPolicy(parameters *Parameters) *Policy {
	constraints := []HardConstraint{
		DepartmentConflict,
		DutyCap(parameters.MaxDutiesPerCycle),
		SessionConflict,
	}

	if parameters.RestrictFemaleLongExams {
		constraints = append(constraints, FemaleLongExamRestriction(parameters.LongExamThresholdHours))
	}

	return &Policy{
		Constraints: constraints,
		Scorers: []SoftScorer{
			LoadScore(parameters.LoadWeight),
			AdjacentShiftScore(parameters.AdjacentShiftWeight),
			RepeatRoomScore(parameters.RepeatRoomWeight),
		},
	}
}

// DepartmentConflict 禁止老师监考本系的考试，避免利益冲突
func DepartmentConflict(ctx *Context) error {
	if ctx.Teacher.Department == ctx.Exam.Department {
		return fmt.Errorf("老师 %d 与考试科目同系", ctx.Teacher.ID)
	}
	return nil
}

// FemaleLongExamRestriction 禁止女老师监考时长达到阈值的考试
// 这是院校的硬性政策，是否启用由参数决定
func FemaleLongExamRestriction(thresholdHours float64) HardConstraint {
	return func(ctx *Context) error {
		if ctx.Teacher.Gender == domain.GenderFemale && ctx.Exam.Duration() >= thresholdHours {
			return fmt.Errorf("老师 %d 不能监考时长达到 %.0f 小时的考试", ctx.Teacher.ID, thresholdHours)
		}
		return nil
	}
}

// DutyCap 限制每位老师在一个周期内的监考次数
func DutyCap(maxDuties int32) HardConstraint {
	return func(ctx *Context) error {
		if ctx.DutyCount[ctx.Teacher.ID] >= maxDuties {
			return fmt.Errorf("老师 %d 的监考次数已达上限 %d", ctx.Teacher.ID, maxDuties)
		}
		return nil
	}
}

// SessionConflict 禁止同一位老师在同一天的同一场次中承担两个岗位
func SessionConflict(ctx *Context) error {
	for _, assignment := range ctx.Assignments {
		if assignment.TeacherID != ctx.Teacher.ID {
			continue
		}
		if sameDate(assignment.Slot.Date, ctx.Slot.Date) && assignment.Slot.Shift == ctx.Slot.Shift {
			return fmt.Errorf("老师 %d 在该场次已有监考安排", ctx.Teacher.ID)
		}
	}
	return nil
}

// LoadScore 偏向监考次数少的老师，实现负载均衡
func LoadScore(weight float64) SoftScorer {
	return func(ctx *Context) float64 {
		return weight * float64(ctx.DutyCount[ctx.Teacher.ID])
	}
}

// AdjacentShiftScore 对同一天相邻场次已有安排的老师加分，避免连续监考
func AdjacentShiftScore(weight float64) SoftScorer {
	return func(ctx *Context) float64 {
		for _, assignment := range ctx.Assignments {
			if assignment.TeacherID != ctx.Teacher.ID {
				continue
			}
			if !sameDate(assignment.Slot.Date, ctx.Slot.Date) {
				continue
			}
			delta := assignment.Slot.Shift - ctx.Slot.Shift
			if delta == 1 || delta == -1 {
				return weight
			}
		}
		return 0
	}
}

// RepeatRoomScore 对已经被分到过同一考场的老师加分
func RepeatRoomScore(weight float64) SoftScorer {
	return func(ctx *Context) float64 {
		for _, assignment := range ctx.Assignments {
			if assignment.TeacherID == ctx.Teacher.ID && assignment.Slot.RoomID == ctx.Slot.RoomID {
				return weight
			}
		}
		return 0
	}
}
