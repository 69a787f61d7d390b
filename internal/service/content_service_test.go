package service

import (
	"testing"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestions(t *testing.T) {
	t.Run("普通题合法", func(t *testing.T) {
		err := validateQuestions([]QuestionRequest{{
			Type:          model.QuestionBasic,
			Prompt:        "How do you greet someone in the morning?",
			Options:       []string{"Good morning", "Good night"},
			CorrectAnswer: 0,
		}})
		assert.NoError(t, err)
	})

	t.Run("答案索引越界", func(t *testing.T) {
		err := validateQuestions([]QuestionRequest{{
			Prompt:        "Pick one",
			Options:       []string{"a", "b"},
			CorrectAnswer: 2,
		}})
		assert.ErrorIs(t, err, util.ErrOptionOutOfRange)
	})

	t.Run("情景题缺少情景描述", func(t *testing.T) {
		err := validateQuestions([]QuestionRequest{{
			Type:          model.QuestionScenario,
			Prompt:        "What should you say?",
			Options:       []string{"a", "b"},
			CorrectAnswer: 1,
		}})
		assert.Error(t, err)
	})

	t.Run("情景题携带情景描述合法", func(t *testing.T) {
		err := validateQuestions([]QuestionRequest{{
			Type:          model.QuestionScenario,
			Prompt:        "What should you say?",
			Scenario:      "You are ordering coffee at a cafe.",
			Options:       []string{"One latte, please", "Goodbye"},
			CorrectAnswer: 0,
		}})
		assert.NoError(t, err)
	})
}
