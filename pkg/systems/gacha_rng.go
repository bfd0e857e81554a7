package systems

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource 抓取结果使用的随机源
// Float64 返回 [0, 1) 内的值
type RandomSource interface {
	Float64() float64
}

// cryptoRNG 默认随机源
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// 取 53 位
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG 返回默认随机源
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG 可复现的随机源（模拟器、测试）
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG 使用固定种子创建随机源
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// FixedRNG 总是返回同一个值
// 小于失败概率时必定失败，否则必定成功
type FixedRNG float64

func (f FixedRNG) Float64() float64 { return float64(f) }

// 测试与调试常用的固定结果
const (
	AlwaysFail    FixedRNG = 0
	AlwaysSucceed FixedRNG = 0.999999
)
