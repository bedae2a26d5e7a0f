package prompt

import "github.com/noah-isme/quiz-report-relay/internal/dto"

// Partition splits question results into correctly and incorrectly answered
// question texts, preserving their order.
func Partition(results []dto.QuestionResult) (correct, incorrect []string) {
	for _, result := range results {
		if result.WasCorrect {
			correct = append(correct, result.Question)
			continue
		}
		incorrect = append(incorrect, result.Question)
	}
	return correct, incorrect
}
