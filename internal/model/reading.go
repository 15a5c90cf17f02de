package model

// BirthInput 是前端表单提交的原始出生信息 (DTO)。
// 日期和时间保持字符串形态，解析成整数元组是 service 层的边界职责。
type BirthInput struct {
	BirthDate     string `json:"birthDate" binding:"required"`               // YYYY-MM-DD
	BirthTime     string `json:"birthTime" binding:"required"`               // HH:MM
	BirthLocation string `json:"birthLocation" binding:"required"`           // 省/市，如 "四川成都"
	Gender        string `json:"gender" binding:"required,oneof=male female"`
}

// ChartPayload 排盘结果，供 Prompt 模板插值，也单独对外返回。
// 全部是展示字符串：公历、农历、四柱、生肖、月令节气。
type ChartPayload struct {
	Solar  string `json:"solar"`
	Lunar  string `json:"lunar"`
	Bazi   string `json:"bazi"` // 四柱空格连接，如 "丁巳 丁未 乙丑 庚辰"
	Zodiac string `json:"zodiac"`
	Term   string `json:"jieqi"` // 月令依据的节气名
}

// Section 报告中的一个章节。
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Comment string `json:"comment,omitempty"` // 师者评语
}

// ReadingBody 一层解读（文言或白话）。
type ReadingBody struct {
	Sections []Section `json:"sections"`
}

// FortuneReading 是模型产出的完整命理报告。
// 结构即模型被要求输出的 JSON 协议，解析时按此校验。
type FortuneReading struct {
	ID                string        `json:"id,omitempty"`
	ClassicalReading  ReadingBody   `json:"classicalReading"`
	VernacularReading ReadingBody   `json:"vernacularReading"`
	Summary           string        `json:"summary"`
	Chart             *ChartPayload `json:"chart,omitempty"`
}
