package domain

import "time"

type Exam struct {
	ID          int64     `json:"id"`
	SubjectCode string    `json:"subjectCode"`
	SubjectName string    `json:"subjectName"`
	Department  string    `json:"department"`
	Branches    []string  `json:"branches"`
	Semester    string    `json:"semester"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"startTime"` // 格式为 15:04:05
	EndTime     string    `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// Duration 返回考试时长（单位为小时）
// 开始时间和结束时间的格式合法性由上游的校验保证
func (e *Exam) Duration() float64 {
	startTime, _ := time.Parse("15:04:05", e.StartTime)
	endTime, _ := time.Parse("15:04:05", e.EndTime)
	return endTime.Sub(startTime).Hours()
}

// Shift 返回考试所在的场次：1 表示上午场，2 表示下午场
// 场次只用于判断监考冲突，不代表具体的钟点
func (e *Exam) Shift() int32 {
	startTime, _ := time.Parse("15:04:05", e.StartTime)
	if startTime.Hour() < 12 {
		return 1
	}
	return 2
}
