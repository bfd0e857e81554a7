package components

import (
	"slices"

	"github.com/decker502/clawtrip/pkg/config"
	"github.com/kamstrup/intmap"
)

// FallenPose 掉落在展示柜底部的娃娃姿态
type FallenPose struct {
	Key      string
	X, Y     float64
	Rotation float64
}

// FallenSet 抓取失败后躺在展示柜里的娃娃集合
// 按娃娃在展示柜中的序号索引，每个娃娃最多一条记录
type FallenSet struct {
	poses *intmap.Map[int, FallenPose]
}

// NewFallenSet 创建空集合
func NewFallenSet() *FallenSet {
	return &FallenSet{poses: intmap.New[int, FallenPose](len(config.PlushDrawOrder))}
}

func plushIndex(key string) int {
	return slices.Index(config.PlushDrawOrder, key)
}

// Put 记录娃娃的掉落姿态，非展示柜娃娃返回 false
func (f *FallenSet) Put(pose FallenPose) bool {
	idx := plushIndex(pose.Key)
	if idx < 0 {
		return false
	}
	f.poses.Put(idx, pose)
	return true
}

// Get 查询娃娃的掉落姿态
func (f *FallenSet) Get(key string) (FallenPose, bool) {
	idx := plushIndex(key)
	if idx < 0 {
		return FallenPose{}, false
	}
	return f.poses.Get(idx)
}

// Has 娃娃是否在集合中
func (f *FallenSet) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Remove 移除娃娃（被重新抓起），返回是否存在
func (f *FallenSet) Remove(key string) bool {
	idx := plushIndex(key)
	if idx < 0 {
		return false
	}
	return f.poses.Del(idx)
}

// Len 集合大小
func (f *FallenSet) Len() int {
	return f.poses.Len()
}

// Keys 按绘制顺序返回集合中的娃娃
func (f *FallenSet) Keys() []string {
	var keys []string
	for _, key := range config.PlushDrawOrder {
		if f.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
