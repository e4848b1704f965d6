package cart

import (
	"context"
	"sync"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "cart"

// State 세션의 관찰 가능한 상태입니다.
//
// 전이: Uninitialized → Loading → Ready, Ready → Mutating → Ready.
// Loading/Mutating에서 실패하면 Error로 진입하며, 다음 호출에서 Loading으로 복귀합니다.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrNoCart 장바구니가 없는 상태에서 제거가 요청된 경우의 로컬 사전조건 실패입니다.
// 원격 에러와 구분되어 UI 계층에 그대로 전달됩니다.
var ErrNoCart = apperrors.New(apperrors.Precondition, "장바구니가 존재하지 않습니다. 먼저 상품을 담아주세요")

// ErrCartGone 변경 도중 백엔드에서 장바구니가 만료된 경우입니다.
var ErrCartGone = apperrors.New(apperrors.NotFound, "장바구니가 만료되었습니다. 새로고침 후 다시 시도해주세요")

// Session 원격 장바구니 상태를 재동기화하는 상태 기계입니다.
//
// 로컬 미러는 항상 마지막으로 성공한 원격 응답으로 통째로 교체되며,
// 실패 시 마지막 정상(last-known-good) 미러와 최근 에러를 함께 보존합니다.
//
// 동시 변경에 대해서는 자체 뮤텍스로 자신의 호출 순서만 직렬화합니다.
// 서로 다른 세션(탭) 간의 경합은 마지막 응답이 이기는(last-write-wins) 것으로
// 수용된 경쟁이며, 그 이상의 순서 보장은 제공하지 않습니다.
type Session struct {
	mu sync.Mutex

	api commerce.CartAPI

	cartID  string
	cart    *commerce.Cart
	state   State
	lastErr error
}

// NewSession 새로운 세션을 생성합니다. cartID는 쿠키에서 읽은 값이며 없으면 빈 문자열입니다.
func NewSession(api commerce.CartAPI, cartID string) *Session {
	return &Session{
		api:    api,
		cartID: cartID,
		state:  StateUninitialized,
	}
}

// CartID 현재 장바구니 식별자를 반환합니다. 장바구니가 없으면 빈 문자열입니다.
func (s *Session) CartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// Cart 마지막 정상 장바구니 미러를 반환합니다.
func (s *Session) Cart() *commerce.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// State 현재 상태를 반환합니다.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError 가장 최근에 기록된 에러를 반환합니다.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Refresh 장바구니 상태를 원격과 재동기화합니다.
//
// 식별자가 없으면 새 장바구니를 생성하고, 있으면 조회합니다.
// 조회 결과가 nil(만료)이면 오래된 식별자를 폐기하고 새로 생성합니다.
func (s *Session) Refresh(ctx context.Context) (*commerce.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateLoading

	if s.cartID == "" {
		return s.createLocked(ctx)
	}

	cart, err := s.api.GetCart(ctx, s.cartID)
	if err != nil {
		return nil, s.failLocked(err)
	}
	if cart == nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"cart_id": s.cartID,
		}).Info("만료된 장바구니 식별자 폐기 후 새 장바구니 생성")

		s.cartID = ""
		return s.createLocked(ctx)
	}

	return s.readyLocked(cart), nil
}

// AddItem 장바구니에 상품 변형을 추가합니다.
//
// 장바구니가 없으면 먼저 암묵적으로 생성합니다(사용자에게는 단일 전이로 보입니다).
// 변경 도중 장바구니가 만료된 것으로 판명되면 식별자를 폐기하고 한 번 재시도합니다.
func (s *Session) AddItem(ctx context.Context, variantID string, quantity int) (*commerce.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cartID == "" {
		s.state = StateLoading
		if _, err := s.createLocked(ctx); err != nil {
			return nil, err
		}
	}

	s.state = StateMutating

	cart, err := s.api.AddLine(ctx, s.cartID, variantID, quantity)
	if err != nil {
		return nil, s.failLocked(err)
	}
	if cart == nil {
		// 백엔드에서 장바구니가 사라진 경우: 식별자를 폐기하고 한 번 재시도합니다.
		s.cartID = ""
		s.cart = nil
		s.state = StateLoading

		if _, err := s.createLocked(ctx); err != nil {
			return nil, err
		}

		s.state = StateMutating
		cart, err = s.api.AddLine(ctx, s.cartID, variantID, quantity)
		if err != nil {
			return nil, s.failLocked(err)
		}
		if cart == nil {
			return nil, s.failLocked(ErrCartGone)
		}
	}

	return s.readyLocked(cart), nil
}

// RemoveItem 장바구니에서 라인을 제거합니다.
// 장바구니가 없으면 ErrNoCart(로컬 사전조건 실패)를 반환합니다.
func (s *Session) RemoveItem(ctx context.Context, lineIDs []string) (*commerce.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cartID == "" {
		return nil, ErrNoCart
	}

	s.state = StateMutating

	cart, err := s.api.RemoveLines(ctx, s.cartID, lineIDs)
	if err != nil {
		return nil, s.failLocked(err)
	}
	if cart == nil {
		s.cartID = ""
		s.cart = nil
		return nil, s.failLocked(ErrCartGone)
	}

	return s.readyLocked(cart), nil
}

// createLocked 새 장바구니를 생성하고 미러를 교체합니다. 뮤텍스를 보유한 상태에서 호출합니다.
func (s *Session) createLocked(ctx context.Context) (*commerce.Cart, error) {
	cart, err := s.api.CreateCart(ctx)
	if err != nil {
		return nil, s.failLocked(err)
	}

	s.cartID = cart.ID
	return s.readyLocked(cart), nil
}

// readyLocked 미러 전체를 성공 응답으로 교체하고 Ready 상태로 전이합니다.
func (s *Session) readyLocked(cart *commerce.Cart) *commerce.Cart {
	s.cart = cart
	s.cartID = cart.ID
	s.state = StateReady
	s.lastErr = nil
	return cart
}

// failLocked 에러를 기록하고 Error 상태로 전이합니다. 마지막 정상 미러는 유지됩니다.
func (s *Session) failLocked(err error) error {
	s.state = StateError
	s.lastErr = err
	return err
}
