package scheduler

import (
	"math"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/jwc-dev/exam-scheduler/backend/internal/utils"
)

type Scheduler struct {
	parameters *Parameters
	policy     *Policy
	teachers   []*domain.Teacher // 注意这个不包含已离职的老师
	exams      map[int64]*domain.Exam
	slots      []domain.DutySlot
}

func New(parameters *Parameters, teachers []*domain.Teacher, exams []*domain.Exam, usage map[int64][]*domain.Room) *Scheduler {
	s := &Scheduler{
		parameters: parameters,
		policy:     DefaultPolicy(parameters),
		teachers:   make([]*domain.Teacher, 0, len(teachers)),
		exams:      make(map[int64]*domain.Exam),
	}

	for _, teacher := range teachers {
		if teacher.IsActive {
			s.teachers = append(s.teachers, teacher)
		}
	}

	for _, exam := range exams {
		s.exams[exam.ID] = exam
	}

	s.slots = GenerateSlots(exams, usage, parameters.RelieverThresholdHours)

	return s
}

// WithPolicy 替换默认的约束和评分组合
func (s *Scheduler) WithPolicy(policy *Policy) *Scheduler {
	s.policy = policy
	return s
}

// Schedule 按时间顺序逐个岗位做贪心分配
// 某个岗位找不到合适的老师时只会把它记入 UnassignedSlots，不会中断整次排班
// 算法不做回溯，前面的分配即使导致后面的岗位无解也不会被推翻
func (s *Scheduler) Schedule() (*domain.DutyRoster, error) {
	roster := &domain.DutyRoster{
		Assignments:     make([]domain.DutyAssignment, 0, len(s.slots)),
		UnassignedSlots: make([]domain.DutySlot, 0),
		GeneratedAt:     time.Now(),
	}
	dutyCount := make(map[int64]int32)

	for i := range s.slots {
		slot := &s.slots[i]

		var best *domain.Teacher
		bestScore := math.MaxFloat64

		for _, teacher := range s.teachers {
			ctx := &Context{
				Teacher:     teacher,
				Slot:        slot,
				Exam:        s.exams[slot.ExamID],
				DutyCount:   dutyCount,
				Assignments: roster.Assignments,
			}

			if s.violates(ctx) {
				continue
			}

			score := s.score(ctx)
			if score < bestScore {
				best = teacher
				bestScore = score
			}
		}

		if best == nil {
			roster.UnassignedSlots = append(roster.UnassignedSlots, *slot)
			continue
		}

		roster.Assignments = append(roster.Assignments, domain.DutyAssignment{
			TeacherID: best.ID,
			Slot:      *slot,
		})
		dutyCount[best.ID]++
	}

	// 还需要检查一下结果是否满足约束条件（调用 utils 包中的方法就可以了）
	if err := utils.ValidateDutyRoster(roster, s.teachers, s.exams); err != nil {
		return nil, err
	}

	return roster, nil
}

func (s *Scheduler) violates(ctx *Context) bool {
	for _, constraint := range s.policy.Constraints {
		if err := constraint(ctx); err != nil {
			return true
		}
	}
	return false
}

func (s *Scheduler) score(ctx *Context) float64 {
	total := 0.0
	for _, scorer := range s.policy.Scorers {
		total += scorer(ctx)
	}
	return total
}
