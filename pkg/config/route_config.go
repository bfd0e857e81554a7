package config

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownRoute 路线ID不存在
var ErrUnknownRoute = errors.New("unknown route")

// Route 一条旅行路线（抓取成功后展示）
type Route struct {
	ID     string   `yaml:"id"`     // 路线ID，如 "a"
	Label  string   `yaml:"label"`  // 展示标签，如 "Route α"
	Title  string   `yaml:"title"`  // 标题
	Text   string   `yaml:"text"`   // 叙述文本
	Photos []string `yaml:"photos"` // 按顺序展示的照片
}

// Heading 返回 "标签 — 标题" 形式的标题行
func (r *Route) Heading() string {
	return r.Label + " — " + r.Title
}

// RouteCatalog 路线目录
//
// 配置文件位置: data/routes.yaml
type RouteCatalog struct {
	Routes []Route `yaml:"routes"`

	byID map[string]*Route
}

// LoadRouteCatalog 加载路线目录
func LoadRouteCatalog(path string) (*RouteCatalog, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route catalog: %w", err)
	}
	return ParseRouteCatalog(data)
}

// LoadRouteCatalogOrDefault 加载路线目录，失败时返回内置目录
// 返回的错误只用于记录日志，目录始终可用
func LoadRouteCatalogOrDefault(path string) (*RouteCatalog, error) {
	catalog, err := LoadRouteCatalog(path)
	if err != nil {
		return DefaultRouteCatalog(), err
	}
	return catalog, nil
}

// ParseRouteCatalog 从 YAML 数据解析路线目录
func ParseRouteCatalog(data []byte) (*RouteCatalog, error) {
	var catalog RouteCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse route catalog: %w", err)
	}
	if err := catalog.index(); err != nil {
		return nil, fmt.Errorf("invalid route catalog: %w", err)
	}
	return &catalog, nil
}

// index 建立 ID 索引，同时校验
//   - 至少一条路线
//   - ID 非空且唯一
//   - 每个槽位映射的路线都存在
func (c *RouteCatalog) index() error {
	if len(c.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}
	c.byID = make(map[string]*Route, len(c.Routes))
	for i := range c.Routes {
		r := &c.Routes[i]
		if r.ID == "" {
			return fmt.Errorf("route #%d has empty id", i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return fmt.Errorf("duplicate route id %q", r.ID)
		}
		c.byID[r.ID] = r
	}
	for _, slot := range Slots {
		if _, ok := c.byID[slot.RouteID]; !ok {
			return fmt.Errorf("slot %s maps to missing route %q", slot.Name, slot.RouteID)
		}
	}
	return nil
}

// Get 按ID查找路线
func (c *RouteCatalog) Get(id string) (*Route, error) {
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, id)
	}
	return r, nil
}

// IDs 返回所有路线ID（排序后）
func (c *RouteCatalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRouteCatalog 返回内置路线目录
func DefaultRouteCatalog() *RouteCatalog {
	c := &RouteCatalog{
		Routes: []Route{
			{
				ID:    "a",
				Label: "Route α",
				Title: "Mountain Protocol",
				Text: "Sub-algorithm detected a 94.2% compatibility with altitude-based serotonin optimization. " +
					"Recommended sequence: 3 days in Tokyo for baseline urban calibration, followed by deployment to " +
					"Takayama (traditional merchant district, morning market protocol), Shirakawa-go (UNESCO-classified " +
					"thatched architecture, optimal for visual cortex stimulation), and Kusatsu (volcanic onsen complex, " +
					"97.3% stress dissolution rate). Total route efficiency: exceptional.",
				Photos: []string{"img/route-a-1.jpg", "img/route-a-2.jpg", "img/route-a-3.jpg", "img/route-a-4.jpg"},
			},
			{
				ID:    "b",
				Label: "Route β",
				Title: "Island Protocol",
				Text: "Cross-archipelago analysis reveals 96.1% match with subtropical neural enhancement patterns. " +
					"Recommended sequence: 3 days in Tokyo for sensory warm-up, then transit to Taipei (night market " +
					"immersion therapy, 847 food stalls mapped), Jiufen (fog-altitude nostalgia coefficient: 0.94), " +
					"Taroko Gorge (geological awe-induction, marble canyon protocol), and Beitou (geothermal recovery " +
					"phase, sulphur spring variant). Total route efficiency: extraordinary.",
				Photos: []string{"img/route-b-1.jpg", "img/route-b-2.jpg", "img/route-b-3.jpg", "img/route-b-4.jpg"},
			},
		},
	}
	// 内置数据保证合法
	_ = c.index()
	return c
}
