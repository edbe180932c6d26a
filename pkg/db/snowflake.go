package db

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator 主键生成器接口
type IDGenerator interface {
	NextID() (int64, error)
}

// 64位ID布局：[0][41位毫秒时间][10位机器ID][12位序列号]
const (
	machineIDBits = 10
	sequenceBits  = 12

	maxMachineID = 1<<machineIDBits - 1
	maxSequence  = 1<<sequenceBits - 1

	// maxRollback 可容忍的时钟回拨，超过则直接报错
	maxRollback = 5 * time.Millisecond
)

// idEpoch 2025-01-01 00:00:00 UTC
var idEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Snowflake 雪花ID生成器
// 同一实例生成的ID严格递增，chirp/comment 时间相同时按 id 排序即为插入顺序
type Snowflake struct {
	mu        sync.Mutex
	clock     func() time.Time
	machineID int64
	lastMs    int64
	sequence  int64
}

// NewSnowflake 创建雪花ID生成器，machineID 区分实例 (0-1023)
func NewSnowflake(machineID int64) (*Snowflake, error) {
	return newSnowflake(machineID, time.Now)
}

func newSnowflake(machineID int64, clock func() time.Time) (*Snowflake, error) {
	if machineID < 0 || machineID > maxMachineID {
		return nil, fmt.Errorf("machineID必须在0-%d之间，当前值：%d", maxMachineID, machineID)
	}
	return &Snowflake{clock: clock, machineID: machineID}, nil
}

// NextID 生成下一个ID
func (s *Snowflake) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.tick()
	if err != nil {
		return 0, err
	}

	if now == s.lastMs {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// 本毫秒序列号用尽
			if now, err = s.waitAfter(s.lastMs); err != nil {
				return 0, err
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastMs = now

	return now<<(machineIDBits+sequenceBits) | s.machineID<<sequenceBits | s.sequence, nil
}

// tick 当前相对 idEpoch 的毫秒数；小幅回拨时等待时钟追上
func (s *Snowflake) tick() (int64, error) {
	now := s.millis()
	if now < 0 {
		return 0, fmt.Errorf("当前时间早于ID起始时间 %s", idEpoch.Format(time.RFC3339))
	}
	if now >= s.lastMs {
		return now, nil
	}
	if drift := time.Duration(s.lastMs-now) * time.Millisecond; drift > maxRollback {
		return 0, fmt.Errorf("时钟回拨 %s，拒绝生成ID", drift)
	}
	return s.waitAfter(s.lastMs - 1)
}

// waitAfter 等待直到时钟越过 last
func (s *Snowflake) waitAfter(last int64) (int64, error) {
	deadline := time.Now().Add(time.Second)
	now := s.millis()
	for now <= last {
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("等待时钟前进超时")
		}
		time.Sleep(100 * time.Microsecond)
		now = s.millis()
	}
	return now, nil
}

func (s *Snowflake) millis() int64 {
	return s.clock().Sub(idEpoch).Milliseconds()
}
