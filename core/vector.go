package core

// FeatureVector 是对齐后的特征向量：名称与取值一一对应，顺序由 schema 固定。
// 由 schema.Reconcile 在每次请求中创建，创建后不再修改（只读传递）。
type FeatureVector struct {
	Names  []string
	Values []float64
}

// Len 返回特征数量。
func (v *FeatureVector) Len() int {
	return len(v.Values)
}

// Get 按特征名取值。向量规模为几十维的量级，线性查找即可。
func (v *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// ToMap 转为 map 形式，供远程推理服务等以字典为输入的后端使用。
func (v *FeatureVector) ToMap() map[string]float64 {
	m := make(map[string]float64, len(v.Names))
	for i, n := range v.Names {
		m[n] = v.Values[i]
	}
	return m
}
