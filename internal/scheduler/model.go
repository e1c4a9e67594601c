package scheduler

import "github.com/jwc-dev/exam-scheduler/backend/internal/domain"

// 排班算法参数
type Parameters struct {
	MaxDutiesPerCycle       int32   // 每位老师在一个考试周期内的监考上限
	RelieverThresholdHours  float64 // 考试时长超过该值时额外生成一个流动监考岗位
	LongExamThresholdHours  float64 // 视为长时考试的时长下限
	RestrictFemaleLongExams bool    // 是否限制女老师监考长时考试（院校政策，可按需关闭）
	LoadWeight              float64 // 已有监考次数的权重
	AdjacentShiftWeight     float64 // 同日相邻场次的惩罚
	RepeatRoomWeight        float64 // 重复分到同一考场的惩罚
}

func DefaultParameters() *Parameters {
	return &Parameters{
		MaxDutiesPerCycle:       5,
		RelieverThresholdHours:  2,
		LongExamThresholdHours:  4,
		RestrictFemaleLongExams: true,
		LoadWeight:              10,
		AdjacentShiftWeight:     50,
		RepeatRoomWeight:        10,
	}
}

// Context: 评估某位老师与某个监考岗位的匹配情况时所需的全部信息
type Context struct {
	Teacher     *domain.Teacher
	Slot        *domain.DutySlot
	Exam        *domain.Exam
	DutyCount   map[int64]int32
	Assignments []domain.DutyAssignment
}

// HardConstraint 返回非 nil 的 error 表示这位老师不能承担这个岗位
type HardConstraint func(ctx *Context) error

// SoftScorer 返回的分数越低表示越适合，只在满足所有硬约束的老师之间比较
type SoftScorer func(ctx *Context) float64

// Policy 把硬约束和软评分组合在一起，方便各院校按自己的政策调整
type Policy struct {
	Constraints []HardConstraint
	Scorers     []SoftScorer
}
