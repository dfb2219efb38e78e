package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.NoError(s.Push(0x234))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(uint16(0x234), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(0x234)
	s.Push(0xabc)

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0xabc), val)
	assert.Equal(1, s.Depth())

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0x234), val)
	assert.Equal(0, s.Depth())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, err := s.Pop()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint16(0), val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	_, ok := s.Peek()
	assert.False(ok)

	s.Push(0x234)
	s.Push(0xabc)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0xabc), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range STACK_LIMIT {
		assert.False(s.Full())
		assert.NoError(s.Push(uint16(n)))
	}
	assert.True(s.Full())

	err := s.Push(0x999)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(STACK_LIMIT, s.Depth())

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(STACK_LIMIT-1), val)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Reset()
	assert.True(s.Empty())

	s.Push(0x202)
	s.Push(0x204)
	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, s.Depth())
}
