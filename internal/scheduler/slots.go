package scheduler

import (
	"sort"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

// GenerateSlots 根据每场考试实际启用的考场生成监考岗位
// 每个 (考试, 考场) 生成一个主监考岗位
// 考试时长超过阈值时再为每个考场生成一个流动监考岗位
// 生成的岗位按 (日期, 场次) 升序排列，排序是稳定的
func GenerateSlots(exams []*domain.Exam, usage map[int64][]*domain.Room, relieverThresholdHours float64) []domain.DutySlot {
	slots := make([]domain.DutySlot, 0)

	for _, exam := range exams {
		for _, room := range usage[exam.ID] {
			slots = append(slots, domain.DutySlot{
				ExamID: exam.ID,
				RoomID: room.ID,
				Type:   domain.DutyMain,
				Date:   exam.Date,
				Shift:  exam.Shift(),
			})

			if exam.Duration() > relieverThresholdHours {
				slots = append(slots, domain.DutySlot{
					ExamID: exam.ID,
					RoomID: room.ID,
					Type:   domain.DutyReliever,
					Date:   exam.Date,
					Shift:  exam.Shift(),
				})
			}
		}
	}

	// 必须先安排时间靠前的岗位，后面岗位的可行性依赖前面的分配结果
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Shift < slots[j].Shift
	})

	return slots
}
