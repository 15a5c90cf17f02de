package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/haoyun/tianji/internal/model"
)

// 报告生成模板。排盘数据由本服务算好后插值，模型只负责解读，
// 不允许它自己排盘——干支算错的报告比没有报告更糟。
const readingPromptTemplate = `你是一位精通中国传统命理学的大师，深谙八字、紫微斗数与易经，同时具备现代心理学知识。你的任务是基于下面已经排好的命盘，生成一份包含"文言开示"与"白话解心"双层结构的专业命理报告。

**命盘信息（已由万年历排定，必须原样引用，严禁改动或重排）:**
- 公历生辰: {{solarDate}} {{birthTime}}
- 农历生辰: {{lunarDate}}
- 四柱八字: {{bazi}}
- 生肖: {{zodiac}}
- 月令节气: {{jieqi}}
- 出生地点: {{birthLocation}}
- 性别: {{gender}}
- 当前日期: {{currentDate}}
- 当前月份: {{currentMonth}}

**解读要求:**
1. 以日干为主、月令为重，定身旺身弱，论五行旺衰与十神关系。
2. 性别（{{gender}}）决定大运顺逆排法，须在【八字命盘】章节明确指出。
3. 在【八字命盘】章节自然融入出生地（{{birthLocation}}）的地理文化元素，不要突兀。
4. 结合当前月份（{{currentMonth}}月）推近期流月运势。
5. 师者评语控制在20-30字内；最终总结控制在30字内，精炼有力。
6. 内化命理典籍的理论，用现代语言表达，严禁在报告中出现任何典籍书名。

**报告结构:**
文言开示与白话解心各包含七个章节，标题依次为：
【八字命盘】【五行生克】【事业功名】【财帛运势】【姻缘情感】【健康平安】【流年运程】

**输出格式（严格遵守，不要输出 JSON 以外的任何内容）:**
{
  "classicalReading": { "sections": [ { "title": "【八字命盘】", "content": "...", "comment": "..." } ] },
  "vernacularReading": { "sections": [ { "title": "【八字命盘】", "content": "...", "comment": "..." } ] },
  "summary": "一句话哲理总结"
}`

// buildPrompt 模板插值。now 由调用方传入，保证同一请求内
// 缓存 key 和 Prompt 用同一个"当前时间"。
func buildPrompt(in model.BirthInput, chart *model.ChartPayload, now time.Time) string {
	gender := "男"
	if in.Gender == "female" {
		gender = "女"
	}
	currentDate := fmt.Sprintf("%d年%d月%d日", now.Year(), int(now.Month()), now.Day())

	r := strings.NewReplacer(
		"{{solarDate}}", chart.Solar,
		"{{birthTime}}", in.BirthTime,
		"{{lunarDate}}", chart.Lunar,
		"{{bazi}}", chart.Bazi,
		"{{zodiac}}", chart.Zodiac,
		"{{jieqi}}", chart.Term,
		"{{birthLocation}}", "中国, "+in.BirthLocation,
		"{{gender}}", gender,
		"{{currentDate}}", currentDate,
		"{{currentMonth}}", fmt.Sprintf("%d", int(now.Month())),
	)
	return r.Replace(readingPromptTemplate)
}
