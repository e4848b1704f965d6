package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 로그를 여러 Writer로 분배하는 logrus Hook 구현체입니다.
//
// 라우팅 정책:
//   - Error 이상: Critical + Main
//   - Info/Warn: Main
//   - Debug/Trace: Verbose (Main에는 기록하지 않음)
//   - Console: 설정된 경우 모든 레벨 출력
//
// 상세 디버그 로그가 운영(Main) 로그에 유입되는 것을 차단하여 장애 분석 효율을 높입니다.
type hook struct {
	mainWriter     io.Writer // 운영 상태와 에러를 기록하는 메인 채널 (INFO 이상)
	criticalWriter io.Writer // 치명적 장애를 격리 보존하는 채널 (ERROR 이상)
	verboseWriter  io.Writer // 디버깅 정보를 기록하는 채널 (DEBUG 이하)
	consoleWriter  io.Writer // 모든 레벨을 실시간 출력하는 표준 출력

	formatter Formatter

	mu sync.RWMutex // 로그 기록(Read Lock)과 종료 처리(Write Lock) 간의 동시성 제어

	closed bool // true일 경우 모든 로그 기록 요청을 거부
}

// Levels 이 Hook이 수신할 로그 레벨의 집합을 반환합니다.
func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 발생한 로그 이벤트를 레벨 기반 라우팅 정책에 따라 적절한 Writer로 분배합니다.
func (h *hook) Fire(entry *Entry) error {
	// Read Lock으로 동시 로깅을 허용하면서, 기록 중 Hook이 종료되지 않도록 보호합니다.
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	// 포맷팅은 한 번만 수행하여 모든 Writer에서 재사용합니다.
	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	var firstErr error

	// 0. Console Writer: 레벨 필터링 없이 전부 출력합니다.
	if h.consoleWriter != nil {
		// 표준 출력 쓰기 실패가 전체 로깅 가용성에 영향을 주지 않도록 에러를 전파하지 않습니다.
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 표준 출력(Console) 쓰기 실패: %v\n", err)
		}
	}

	// 1. Critical Writer (Error 이상)
	//    쓰기 에러가 발생해도 메인 로그 기록은 반드시 수행되어야 하므로 에러 반환을 유예합니다.
	if entry.Level <= ErrorLevel && h.criticalWriter != nil {
		if _, err := h.criticalWriter.Write(msg); err != nil {
			firstErr = err
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Critical 로그 파일 쓰기 실패 (데이터 유실 위험): %v\n", err)
		}
	}

	// 2. Verbose Writer (Debug/Trace)
	//    상세 로그는 메인 로그에 남기지 않으므로 여기서 함수를 종료합니다.
	if entry.Level >= DebugLevel {
		if h.verboseWriter != nil {
			if _, err := h.verboseWriter.Write(msg); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] Verbose 로그 파일 쓰기 실패: %v\n", err)
			}
		}

		return firstErr
	}

	// 3. Main Writer (Info 이상)
	//    에러 로그도 중복 기록하여 전체 운영 문맥을 보존합니다.
	if h.mainWriter != nil {
		if _, err := h.mainWriter.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Main 로그 파일 쓰기 실패 (운영 기록 유실 위험): %v\n", err)
		}
	}

	return firstErr
}

// Close Hook을 종료 상태로 전환하여 더 이상의 로그 기록을 차단합니다.
func (h *hook) Close() error {
	// Write Lock을 획득하여 실행 중인 모든 로깅 작업이 완료될 때까지 대기합니다.
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
