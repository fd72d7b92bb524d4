// Package lrustore backs cache.Interface with a fixed-size LRU.
package lrustore

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Store[V any] struct {
	lru *lru.Cache[uint64, V]
}

func New[V any](size int) (*Store[V], error) {
	if size <= 0 {
		return nil, errors.New("lru size must be positive")
	}
	c, err := lru.New[uint64, V](size)
	if err != nil {
		return nil, fmt.Errorf("lru new(%d): %w", size, err)
	}
	return &Store[V]{lru: c}, nil
}

func (s *Store[V]) Get(key uint64) (V, bool) { return s.lru.Get(key) }

func (s *Store[V]) Add(key uint64, val V) { s.lru.Add(key, val) }

func (s *Store[V]) Len() int { return s.lru.Len() }
