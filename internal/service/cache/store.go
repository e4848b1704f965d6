package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "cache"

// refreshTimeout 백그라운드 갱신 한 번에 허용되는 최대 시간입니다.
const refreshTimeout = 30 * time.Second

// Loader 캐시 미스 또는 갱신 시 원본 데이터를 읽어오는 함수입니다.
type Loader func(ctx context.Context) (interface{}, error)

// storeEntry 캐시 항목입니다. 만료되어도 다음 성공적인 갱신까지 값은 유지됩니다.
type storeEntry struct {
	value      interface{}
	expiresAt  time.Time
	ttl        time.Duration
	tags       []string
	refreshing bool
}

func (e *storeEntry) fresh(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// Store 프로세스 전역 stale-while-revalidate 캐시입니다.
//
//   - 신선한 적중: 값을 즉시 반환
//   - 만료된 적중: 마지막 성공 값을 즉시 반환하고, 키당 하나의 분리된(detached)
//     백그라운드 갱신을 트리거. 갱신 실패는 로깅만 하고 기존 값을 계속 제공
//   - 미스: 동기 로드 (동일 키의 동시 미스는 단일 로드로 병합)
//
// 동시 갱신 간의 경합은 마지막 쓰기가 이기는(last-write-wins) 정책을 따릅니다.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	loads   map[string]*memoCall
}

// NewStore 새로운 Store 인스턴스를 생성합니다.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*storeEntry),
		loads:   make(map[string]*memoCall),
	}
}

// GetOrLoad 키에 대한 캐시된 값을 반환하거나 로더를 통해 채웁니다.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, tags []string, loader Loader) (interface{}, error) {
	now := time.Now()

	s.mu.Lock()

	if entry, exists := s.entries[key]; exists {
		value := entry.value

		if entry.fresh(now) {
			s.mu.Unlock()
			return value, nil
		}

		// 만료된 값: 즉시 반환하되, 키당 하나의 백그라운드 갱신만 허용합니다.
		if !entry.refreshing {
			entry.refreshing = true
			go s.refresh(key, ttl, tags, loader)
		}

		s.mu.Unlock()
		return value, nil
	}

	// 미스: 동일 키의 동시 로드를 하나로 병합합니다.
	if call, exists := s.loads[key]; exists {
		s.mu.Unlock()
		<-call.done
		return call.result.value, call.result.err
	}

	call := &memoCall{done: make(chan struct{})}
	s.loads[key] = call
	s.mu.Unlock()

	value, err := loader(ctx)

	s.mu.Lock()
	delete(s.loads, key)
	if err == nil {
		s.entries[key] = &storeEntry{
			value:     value,
			expiresAt: time.Now().Add(ttl),
			ttl:       ttl,
			tags:      slices.Clone(tags),
		}
	}
	s.mu.Unlock()

	call.result = memoResult{value: value, err: err}
	close(call.done)

	return value, err
}

// refresh 요청 처리와 분리된 고루틴에서 캐시 항목을 갱신합니다.
// 실패 시 기존 값을 유지하여 다음 성공적인 갱신까지 만료된 데이터를 계속 제공합니다.
func (s *Store) refresh(key string, ttl time.Duration, tags []string, loader Loader) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	value, err := loader(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[key]
	if !exists {
		// 갱신 도중 태그 퍼지로 제거된 경우: 갱신 결과가 퍼지를 되살리면 안 됩니다.
		return
	}

	entry.refreshing = false

	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"key": key,
		}).WithError(err).Error("캐시 백그라운드 갱신 실패 (기존 값 유지)")
		return
	}

	entry.value = value
	entry.expiresAt = time.Now().Add(ttl)
	entry.ttl = ttl
	entry.tags = slices.Clone(tags)
}

// Set 캐시 항목을 직접 저장합니다. 재검증 서비스가 로더 실행 결과를 반영할 때 사용합니다.
func (s *Store) Set(key string, value interface{}, ttl time.Duration, tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &storeEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		ttl:       ttl,
		tags:      slices.Clone(tags),
	}
}

// PurgeTag 해당 태그가 붙은 모든 캐시 항목을 강제 제거하고 제거된 항목 수를 반환합니다.
// 제거된 키의 다음 조회는 동기 로드로 이어져 즉시 새 데이터를 받습니다.
func (s *Store) PurgeTag(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for key, entry := range s.entries {
		if slices.Contains(entry.tags, tag) {
			delete(s.entries, key)
			purged++
		}
	}

	if purged > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"tag":    tag,
			"purged": purged,
		}).Info("캐시 태그 퍼지 완료")
	}

	return purged
}
