package calendar

// 干支静态表。下标即循环序号，所有柱位计算都基于这两张表取模。
var (
	// Stems 十天干
	Stems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	// Branches 十二地支
	Branches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	// ZodiacAnimals 生肖，与地支一一对应
	ZodiacAnimals = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}
)

// 农历月份显示名（冬月、腊月是十一月、十二月的传统叫法）
var lunarMonthNames = [13]string{
	"", "正月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "冬月", "腊月",
}

// 农历日期显示名，1-30
var lunarDayNames = [31]string{
	"",
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

// 时辰名称，与地支对应（子时、丑时……）
var hourSlotNames = [12]string{
	"子时", "丑时", "寅时", "卯时", "辰时", "巳时",
	"午时", "未时", "申时", "酉时", "戌时", "亥时",
}

var stemIndex = buildIndex(Stems[:])
var branchIndex = buildIndex(Branches[:])

func buildIndex(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, s := range labels {
		m[s] = i
	}
	return m
}

// StemIndex 返回天干在十干表中的序号，未知返回 -1。
func StemIndex(stem string) int {
	if i, ok := stemIndex[stem]; ok {
		return i
	}
	return -1
}

// BranchIndex 返回地支在十二支表中的序号，未知返回 -1。
func BranchIndex(branch string) int {
	if i, ok := branchIndex[branch]; ok {
		return i
	}
	return -1
}

// HourBranchIndex 把 24 小时制的小时映射到时辰地支序号。
// 23 点起进入次日子时，这里只回绕地支，不回绕日柱（晚子时不换日，见 bazi 包）。
func HourBranchIndex(hour int) int {
	return ((hour + 1) / 2) % 12
}

// HourSlotName 返回小时对应的时辰名，如 7 -> "辰时"。
func HourSlotName(hour int) string {
	return hourSlotNames[HourBranchIndex(hour)]
}

// Zodiac 返回地支对应的生肖。
func Zodiac(branch string) string {
	i := BranchIndex(branch)
	if i < 0 {
		return ""
	}
	return ZodiacAnimals[i]
}
