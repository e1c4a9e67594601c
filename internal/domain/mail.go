package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type DutyNoticeMailData struct {
	FullName string           `json:"fullName"`
	Duties   []DutyNoticeItem `json:"duties"`
}

type DutyNoticeItem struct {
	SubjectName string `json:"subjectName"`
	RoomNumber  string `json:"roomNumber"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	DutyType    string `json:"dutyType"`
}
