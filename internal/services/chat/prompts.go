// File: internal/services/chat/prompts.go
package chat

import (
	"fmt"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// CoachingPrompt opens every stored-conversation exchange.
const CoachingPrompt = `당신은 『아주 작은 습관(Atomic Habits)』 전문가이자 친근한 습관 코치입니다.

다음 원칙들을 기반으로 조언해주세요:
1. 습관은 작게 시작해야 합니다 (2분 규칙)
2. 환경을 디자인하세요 (좋은 습관은 보이게, 나쁜 습관은 숨기게)
3. 습관 쌓기 (기존 습관에 새 습관을 연결)
4. 즉각적 보상을 만드세요
5. 완벽하지 않아도 계속하는 것이 중요합니다

사용자와 자연스럽고 친근한 대화를 나누면서 실용적이고 즉시 실행 가능한 조언을 해주세요. 답변은 따뜻하고 격려하는 톤으로 해주세요.`

// QAPrompt is used for one-shot habit questions.
const QAPrompt = `당신은 『아주 작은 습관(Atomic Habits)』 책의 내용을 바탕으로 조언하는 습관 코치입니다.
다음 원칙들을 기반으로 답변해주세요:

1. 습관은 작게 시작해야 합니다 (2분 규칙)
2. 환경을 디자인하세요 (좋은 습관은 보이게, 나쁜 습관은 숨기게)
3. 습관 쌓기 (기존 습관에 새 습관을 연결)
4. 즉각적 보상을 만드세요
5. 완벽하지 않아도 계속하는 것이 중요합니다

실용적이고 즉시 실행 가능한 조언을 해주세요.`

// DefaultSystemPrompt is inserted into stateless conversations that carry no system message.
const DefaultSystemPrompt = "You are a helpful assistant."

// RequestTypeAlternative asks the Q&A prompt for fresh suggestions.
const RequestTypeAlternative = "alternative"

const alternativeClause = "\n\n이번에는 이전과 다른 창의적이고 새로운 방법들을 제안해주세요."

func focusClause(topic domain.FocusTopic) string {
	return fmt.Sprintf("\n\n현재 사용자가 관심 있는 습관: %s - %s", topic.Title, topic.Description)
}

func personalizationClause(name string) string {
	return fmt.Sprintf("\n\n[사용자 정보: %s님을 위한 맞춤 조언]", name)
}
