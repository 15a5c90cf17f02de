package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// GenerateKey 把输入记录规范化后取摘要，作为缓存 key。
// 整个记忆化层的正确性都压在这一条上：语义相同的输入必须得到相同 key。
// 做法是先序列化再反序列化成通用结构重排（encoding/json 对 map 键
// 固定按字典序输出），字段声明顺序不同的两个结构体会得到同一个 key。
// MD5 在这里只当指纹用，不承担任何安全职责。
func GenerateKey(record any) string {
	b, err := json.Marshal(record)
	if err != nil {
		// 不可序列化的输入退化为类型描述，保证函数总能返回
		b = []byte(fmt.Sprintf("%#v", record))
	}

	var normalized any
	if err := json.Unmarshal(b, &normalized); err == nil {
		if canonical, err := json.Marshal(normalized); err == nil {
			b = canonical
		}
	}

	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
