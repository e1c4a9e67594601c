package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateEmailFromChineseName(chineseName string, emailDomainName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		localPart += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart + "@" + emailDomainName
}

// GenerateRandomEnrollmentNo 生成形如 21CE1024 的学号
func GenerateRandomEnrollmentNo(branch string) string {
	year := rand.Intn(5) + 20
	return fmt.Sprintf("%02d%s%04d", year, branch, rand.Intn(10000))
}

var genders = []domain.Gender{
	domain.GenderMale,
	domain.GenderFemale,
}

func GenerateRandomGender() domain.Gender {
	return genders[rand.Intn(len(genders))]
}

var departments = []string{"CE", "ME", "EE", "CSE", "CIVIL"}
var semesters = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

func GenerateRandomStudent() *domain.Student {
	branch := departments[rand.Intn(len(departments))]

	return &domain.Student{
		EnrollmentNo: GenerateRandomEnrollmentNo(branch),
		FullName:     GenerateRandomChineseName(),
		Branch:       branch,
		Semester:     semesters[rand.Intn(len(semesters))],
		Batch:        fmt.Sprintf("%d", 2020+rand.Intn(5)),
	}
}

func GenerateRandomTeacher(emailDomainName string) *domain.Teacher {
	fullName := GenerateRandomChineseName()

	return &domain.Teacher{
		FullName:   fullName,
		Gender:     GenerateRandomGender(),
		Department: departments[rand.Intn(len(departments))],
		Email:      GenerateEmailFromChineseName(fullName, emailDomainName),
		IsActive:   rand.Intn(10) != 0, // 约一成老师处于休假状态
	}
}

func GenerateRandomRoom() *domain.Room {
	return &domain.Room{
		Number:   fmt.Sprintf("%d%02d", rand.Intn(4)+1, rand.Intn(20)+1),
		Capacity: int32((rand.Intn(10) + 3) * 4), // 每排四个座位
		IsActive: rand.Intn(10) != 0,
	}
}

var subjects = []struct {
	Code string
	Name string
}{
	{"MA101", "高等数学"},
	{"PH102", "大学物理"},
	{"CS201", "数据结构"},
	{"CS301", "操作系统"},
	{"EE202", "电路原理"},
	{"ME203", "工程力学"},
	{"CE204", "结构设计"},
}

// GenerateRandomExam 生成一场考试，考试日期在 baseDate 之后的一周内
func GenerateRandomExam(baseDate time.Time) *domain.Exam {
	subject := subjects[rand.Intn(len(subjects))]

	branchesNum := rand.Intn(2) + 1
	branches := make([]string, 0, branchesNum)
	for _, branch := range GenerateRandomSubset(departments, branchesNum) {
		branches = append(branches, branch)
	}

	startHour := 9
	if rand.Intn(2) == 1 {
		startHour = 14
	}
	durationHours := rand.Intn(3) + 2

	return &domain.Exam{
		SubjectCode: subject.Code,
		SubjectName: subject.Name,
		Department:  branches[0],
		Branches:    branches,
		Semester:    semesters[rand.Intn(len(semesters))],
		Date:        baseDate.AddDate(0, 0, rand.Intn(7)),
		StartTime:   fmt.Sprintf("%02d:00:00", startHour),
		EndTime:     fmt.Sprintf("%02d:00:00", startHour+durationHours),
	}
}

// GenerateRandomSubset 使用 Fisher-Yates 洗牌算法来生成一个随机子集
func GenerateRandomSubset(arr []string, n int) []string {
	arrCopy := append([]string{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	if n > len(arrCopy) {
		n = len(arrCopy)
	}
	return arrCopy[:n]
}
