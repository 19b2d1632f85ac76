// Package hook 提供宿主平台的扩展点：过滤器（filter）与动作（action）。
//
// 回调按优先级升序执行，优先级相同按注册顺序执行。所有回调都在调用方的
// goroutine 中同步执行。
package hook

import (
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// DefaultPriority 默认优先级
const DefaultPriority = 10

type entry[F any] struct {
	fn       F
	priority int
	seq      int
}

type callbacks[F any] struct {
	mu      sync.RWMutex
	name    string
	seq     int
	entries []entry[F]
}

func (c *callbacks[F]) add(fn F, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.entries = append(c.entries, entry[F]{fn: fn, priority: priority, seq: c.seq})
	sort.SliceStable(c.entries, func(i, j int) bool {
		if c.entries[i].priority != c.entries[j].priority {
			return c.entries[i].priority < c.entries[j].priority
		}
		return c.entries[i].seq < c.entries[j].seq
	})
}

// snapshot 返回当前回调列表的副本，执行期间注册的新回调不影响本次调用
func (c *callbacks[F]) snapshot() []entry[F] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entry[F], len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *callbacks[F]) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// FilterFunc 过滤器回调：接收当前值，返回修改后的值
type FilterFunc[T any] func(T) T

// Filter 命名过滤器
type Filter[T any] struct {
	callbacks[FilterFunc[T]]
}

// NewFilter 创建过滤器
func NewFilter[T any](name string) *Filter[T] {
	f := &Filter[T]{}
	f.name = name
	return f
}

// Name 扩展点名称
func (f *Filter[T]) Name() string { return f.name }

// Add 注册回调
func (f *Filter[T]) Add(fn FilterFunc[T], priority int) {
	if fn == nil {
		return
	}
	f.add(fn, priority)
}

// Len 已注册回调数量
func (f *Filter[T]) Len() int { return f.count() }

// Apply 依次执行回调，上一个回调的返回值作为下一个的输入
func (f *Filter[T]) Apply(value T) T {
	for _, e := range f.snapshot() {
		value = e.fn(value)
	}
	return value
}

// ActionFunc 动作回调，返回的错误只会被记录，不会中断后续回调
type ActionFunc[T any] func(T) error

// Action 命名动作
type Action[T any] struct {
	callbacks[ActionFunc[T]]
}

// NewAction 创建动作
func NewAction[T any](name string) *Action[T] {
	a := &Action[T]{}
	a.name = name
	return a
}

// Name 扩展点名称
func (a *Action[T]) Name() string { return a.name }

// Add 注册回调
func (a *Action[T]) Add(fn ActionFunc[T], priority int) {
	if fn == nil {
		return
	}
	a.add(fn, priority)
}

// Len 已注册回调数量
func (a *Action[T]) Len() int { return a.count() }

// Do 执行全部回调。某个回调返回错误或 panic 时记录日志并继续执行其余回调，
// 最后返回合并后的错误。
func (a *Action[T]) Do(arg T) error {
	var errs error
	for _, e := range a.snapshot() {
		if err := a.invoke(e.fn, arg); err != nil {
			log.Errorf("执行动作 %s 的回调失败: %v", a.name, err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (a *Action[T]) invoke(fn ActionFunc[T], arg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook %s: callback panic: %v", a.name, r)
		}
	}()
	return fn(arg)
}
