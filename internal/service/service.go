// Package service 애플리케이션을 구성하는 장기 실행 서비스들의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 메인 고루틴에 의해 기동되고 종료 시그널로 정리되는 장기 실행 서비스입니다.
//
// Start는 서비스 고루틴을 기동한 뒤 즉시 반환해야 하며, serviceStopCtx가 취소되면
// 내부 자원을 정리하고 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
