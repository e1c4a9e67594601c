package allocator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/jwc-dev/exam-scheduler/backend/internal/utils"
)

// SeatColumns 表示考场中每行的座位数，只用于计算展示用的行列号
const SeatColumns = 4

var ErrNoEligibleStudents = errors.New("没有符合条件的考生，请检查考生数据库")

type InsufficientCapacityError struct {
	Required  int
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("考场容量不足：需要 %d 个座位，实际只有 %d 个", e.Required, e.Available)
}

type Allocator struct {
	exam     *domain.Exam
	students []*domain.Student
	rooms    []*domain.Room
	rng      *rand.Rand
}

func New(exam *domain.Exam, students []*domain.Student, rooms []*domain.Room) *Allocator {
	return NewWithSeed(exam, students, rooms, time.Now().UnixNano())
}

// NewWithSeed 使用固定的随机种子，相同的输入会产生完全相同的座位表
func NewWithSeed(exam *domain.Exam, students []*domain.Student, rooms []*domain.Room, seed int64) *Allocator {
	return &Allocator{
		exam:     exam,
		students: students,
		rooms:    rooms,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (a *Allocator) Allocate() (*domain.SeatingResult, error) {
	// 筛选出符合专业和学期要求的考生
	eligible := a.eligibleStudents()
	if len(eligible) == 0 {
		return nil, ErrNoEligibleStudents
	}

	// 筛选出启用的考场，并按容量从大到小排序（相同容量时保持输入顺序）
	rooms := a.activeRoomsByCapacity()

	available := 0
	for _, room := range rooms {
		available += int(room.Capacity)
	}
	if available < len(eligible) {
		return nil, &InsufficientCapacityError{
			Required:  len(eligible),
			Available: available,
		}
	}

	// 先打乱考生顺序，再按专业轮流交错排列
	// 洗牌必须在交错之前做，否则会破坏座位序列中的专业交错
	a.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	sequence := a.interleaveByBranch(eligible)

	result := &domain.SeatingResult{
		ExamID:      a.exam.ID,
		Assignments: a.pack(sequence, rooms),
		GeneratedAt: time.Now(),
	}

	// 返回前再校验一遍结果是否满足约束条件
	if err := utils.ValidateSeatingResult(result, rooms, eligible); err != nil {
		return nil, err
	}

	return result, nil
}

func (a *Allocator) eligibleStudents() []*domain.Student {
	eligible := make([]*domain.Student, 0)
	for _, student := range a.students {
		if !slices.Contains(a.exam.Branches, student.Branch) {
			continue
		}
		if !utils.EqualSemester(student.Semester, a.exam.Semester) {
			continue
		}
		eligible = append(eligible, student)
	}
	return eligible
}

func (a *Allocator) activeRoomsByCapacity() []*domain.Room {
	rooms := make([]*domain.Room, 0)
	for _, room := range a.rooms {
		if room.IsActive {
			rooms = append(rooms, room)
		}
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Capacity > rooms[j].Capacity
	})

	return rooms
}

// interleaveByBranch 把考生按专业分组后轮流取出
// 这样座位序列中不会出现同专业考生的长连续段，是防作弊的核心手段
func (a *Allocator) interleaveByBranch(students []*domain.Student) []*domain.Student {
	groups := make([][]*domain.Student, 0)
	groupIndex := make(map[string]int)

	for _, student := range students {
		idx, exists := groupIndex[student.Branch]
		if !exists {
			idx = len(groups)
			groupIndex[student.Branch] = idx
			groups = append(groups, make([]*domain.Student, 0))
		}
		groups[idx] = append(groups[idx], student)
	}

	sequence := make([]*domain.Student, 0, len(students))
	for round := 0; len(sequence) < len(students); round++ {
		for _, group := range groups {
			if round < len(group) {
				sequence = append(sequence, group[round])
			}
		}
	}

	return sequence
}

func (a *Allocator) pack(sequence []*domain.Student, rooms []*domain.Room) []domain.SeatAssignment {
	assignments := make([]domain.SeatAssignment, 0, len(sequence))

	next := 0
	for _, room := range rooms {
		for seat := int32(1); seat <= room.Capacity && next < len(sequence); seat++ {
			student := sequence[next]
			next++

			assignments = append(assignments, domain.SeatAssignment{
				ExamID:       a.exam.ID,
				StudentID:    student.ID,
				EnrollmentNo: student.EnrollmentNo,
				Branch:       student.Branch,
				RoomID:       room.ID,
				SeatNumber:   seat,
				Row:          int32(math.Ceil(float64(seat) / SeatColumns)),
				Col:          (seat-1)%SeatColumns + 1,
			})
		}
	}

	return assignments
}
