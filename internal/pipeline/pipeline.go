package pipeline

import (
	"github.com/jwc-dev/exam-scheduler/backend/internal/allocator"
	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/jwc-dev/exam-scheduler/backend/internal/scheduler"
)

// RoomUsage 记录每场考试实际用到的考场，是座位分配和监考排班之间的中间产物
type RoomUsage map[int64][]*domain.Room

// AllocationFailure 记录某场考试座位分配失败的原因
// 单场考试的失败不会中断整个流程，由管理员自行处理
type AllocationFailure struct {
	ExamID int64  `json:"examID"`
	Reason string `json:"reason"`
}

type Result struct {
	SeatingResults []*domain.SeatingResult `json:"seatingResults"`
	Usage          RoomUsage               `json:"usage"`
	Roster         *domain.DutyRoster      `json:"roster"`
	Failures       []AllocationFailure     `json:"failures"`
}

type Pipeline struct {
	parameters *scheduler.Parameters
	exams      []*domain.Exam
	students   []*domain.Student
	rooms      []*domain.Room
	teachers   []*domain.Teacher
	seed       *int64
}

func New(parameters *scheduler.Parameters, exams []*domain.Exam, students []*domain.Student, rooms []*domain.Room, teachers []*domain.Teacher) *Pipeline {
	return &Pipeline{
		parameters: parameters,
		exams:      exams,
		students:   students,
		rooms:      rooms,
		teachers:   teachers,
	}
}

// WithSeed 固定随机种子，使整个流程的输出可以复现
func (p *Pipeline) WithSeed(seed int64) *Pipeline {
	p.seed = &seed
	return p
}

// Run 分两个阶段执行：先为每场考试分配座位并汇总考场使用情况，
// 再对全部考试做一次监考排班
// 监考岗位的集合跨越所有考试，所以必须等所有座位分配结束后才能排班
func (p *Pipeline) Run() (*Result, error) {
	result := &Result{
		SeatingResults: make([]*domain.SeatingResult, 0, len(p.exams)),
		Usage:          make(RoomUsage),
		Failures:       make([]AllocationFailure, 0),
	}

	for _, exam := range p.exams {
		var alloc *allocator.Allocator
		if p.seed != nil {
			// 每场考试用不同的种子，避免所有考试产生相同的洗牌顺序
			alloc = allocator.NewWithSeed(exam, p.students, p.rooms, *p.seed+exam.ID)
		} else {
			alloc = allocator.New(exam, p.students, p.rooms)
		}

		seating, err := alloc.Allocate()
		if err != nil {
			result.Failures = append(result.Failures, AllocationFailure{
				ExamID: exam.ID,
				Reason: err.Error(),
			})
			continue
		}
		result.SeatingResults = append(result.SeatingResults, seating)

		// 汇总这场考试实际用到的考场，保持考场的输入顺序
		used := make(map[int64]bool)
		for _, assignment := range seating.Assignments {
			used[assignment.RoomID] = true
		}
		for _, room := range p.rooms {
			if used[room.ID] {
				result.Usage[exam.ID] = append(result.Usage[exam.ID], room)
			}
		}
	}

	roster, err := scheduler.New(p.parameters, p.teachers, p.exams, result.Usage).Schedule()
	if err != nil {
		return nil, err
	}
	result.Roster = roster

	return result, nil
}
