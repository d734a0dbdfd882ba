// flow выбирает экран клиента по флагам сессии и меняет флаги по событиям
// (регистрация, подтверждение, вход, онбординг, выход).
// Состояние не сохраняется: при старте оно восстанавливается из tokenstore
// через session.Controller.Initialize.
package flow

// Screen - один из взаимоисключающих экранов.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenConfirmEmail
	ScreenSignIn
	ScreenSignUp
	ScreenWelcomeGate
	ScreenOnboarding
	ScreenMain
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenConfirmEmail:
		return "confirm_email"
	case ScreenSignIn:
		return "sign_in"
	case ScreenSignUp:
		return "sign_up"
	case ScreenWelcomeGate:
		return "welcome_gate"
	case ScreenOnboarding:
		return "onboarding"
	case ScreenMain:
		return "main"
	default:
		return "unknown"
	}
}

// State - флаги потока.
// ShowSignUp и ShowConfirmEmail не бывают true одновременно;
// HasProfile имеет смысл только при IsAuthenticated.
type State struct {
	AuthLoading        bool
	IsAuthenticated    bool
	HasProfile         bool
	ShowSignUp         bool
	ShowConfirmEmail   bool
	ShowOnboarding     bool
	PendingSignupEmail string
}

// Initial - состояние при старте процесса: идёт проверка сессии.
func Initial() State {
	return State{AuthLoading: true}
}

// Select - чистая функция выбора экрана. Правила проверяются по порядку,
// первое сработавшее побеждает.
func Select(s State) Screen {
	switch {
	case s.AuthLoading:
		return ScreenLoading
	case !s.IsAuthenticated:
		if s.ShowConfirmEmail {
			return ScreenConfirmEmail
		}
		if s.ShowSignUp {
			return ScreenSignUp
		}
		return ScreenSignIn
	case !s.HasProfile && !s.ShowOnboarding:
		return ScreenWelcomeGate
	case s.ShowOnboarding:
		return ScreenOnboarding
	default:
		return ScreenMain
	}
}
