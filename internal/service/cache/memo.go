// Package cache 상위 데이터 소스 호출에 요청 단위 중복 제거(Memo)와
// 프로세스 단위 stale-while-revalidate 캐싱(Store)을 계층화합니다.
package cache

import "sync"

// memoResult 완료된 호출의 결과입니다.
type memoResult struct {
	value interface{}
	err   error
}

// memoCall 동일 키에 대한 진행 중인 호출입니다.
// done 채널이 닫히면 결과가 확정된 것입니다.
type memoCall struct {
	done   chan struct{}
	result memoResult
}

// Memo 요청(렌더링) 범위의 중복 호출 제거기입니다.
//
// 하나의 요청을 처리하는 동안 동일한 키로 Do가 반복 호출되면, 실제 함수는 한 번만
// 실행되고 나머지 호출은 완료되었거나 진행 중인 결과를 공유합니다.
// 수명은 정확히 요청 하나이며, 요청 간에 공유되지 않습니다.
type Memo struct {
	mu    sync.Mutex
	calls map[string]*memoCall
}

// NewMemo 새로운 Memo 인스턴스를 생성합니다.
func NewMemo() *Memo {
	return &Memo{
		calls: make(map[string]*memoCall),
	}
}

// Do 키에 대한 함수 호출을 수행하거나, 동일 키의 완료/진행 중인 결과를 반환합니다.
func (m *Memo) Do(key string, fn func() (interface{}, error)) (interface{}, error) {
	m.mu.Lock()
	if call, exists := m.calls[key]; exists {
		m.mu.Unlock()
		<-call.done
		return call.result.value, call.result.err
	}

	call := &memoCall{done: make(chan struct{})}
	m.calls[key] = call
	m.mu.Unlock()

	call.result.value, call.result.err = fn()
	close(call.done)

	return call.result.value, call.result.err
}
