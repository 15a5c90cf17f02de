package cache

import "testing"

// 两个字段声明顺序不同的结构体，序列化语义相同。
type birthA struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Gender string `json:"gender"`
}

type birthB struct {
	Gender string `json:"gender"`
	Time   string `json:"time"`
	Date   string `json:"date"`
}

func TestGenerateKeyFieldOrderIndependent(t *testing.T) {
	a := birthA{Date: "1977-07-07", Time: "07:07", Gender: "male"}
	b := birthB{Date: "1977-07-07", Time: "07:07", Gender: "male"}

	ka, kb := GenerateKey(a), GenerateKey(b)
	if ka != kb {
		t.Errorf("字段顺序不同导致 key 不同: %s vs %s", ka, kb)
	}

	// map 形态的等价输入也应得到同一个 key
	m := map[string]any{"date": "1977-07-07", "time": "07:07", "gender": "male"}
	if km := GenerateKey(m); km != ka {
		t.Errorf("map 与 struct 的 key 不一致: %s vs %s", km, ka)
	}
}

func TestGenerateKeyValueSensitive(t *testing.T) {
	base := birthA{Date: "1977-07-07", Time: "07:07", Gender: "male"}
	changed := base
	changed.Time = "07:08"

	if GenerateKey(base) == GenerateKey(changed) {
		t.Error("取值不同却得到相同 key")
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	in := birthA{Date: "1977-07-07", Time: "07:07", Gender: "male"}
	first := GenerateKey(in)
	if len(first) != 32 {
		t.Fatalf("key 长度 = %d, want 32 位十六进制", len(first))
	}
	for i := 0; i < 5; i++ {
		if got := GenerateKey(in); got != first {
			t.Fatalf("第 %d 次 key %s != 首次 %s", i, got, first)
		}
	}
}

func TestGenerateKeyUnmarshalableInput(t *testing.T) {
	// chan 无法序列化，仍应返回一个稳定 key 而不是 panic
	ch := make(chan int)
	k1, k2 := GenerateKey(ch), GenerateKey(ch)
	if k1 == "" || k1 != k2 {
		t.Errorf("不可序列化输入的 key 不稳定: %s vs %s", k1, k2)
	}
}
