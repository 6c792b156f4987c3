package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// pageCount returns how many modals are needed for n questions
func pageCount(n int) int {
	return (n + bot.MaxModalInputs - 1) / bot.MaxModalInputs
}

// pageOf returns the questions shown on page, or nil when out of range
func pageOf(questions []*model.Question, page int) []*model.Question {
	start := page * bot.MaxModalInputs
	if page < 0 || start >= len(questions) {
		return nil
	}
	end := start + bot.MaxModalInputs
	if end > len(questions) {
		end = len(questions)
	}
	return questions[start:end]
}

// parsePage reads the page number from the first custom ID segment
func parsePage(segments []string) (int, error) {
	if len(segments) == 0 {
		return 0, nil
	}
	page, err := strconv.Atoi(segments[0])
	if err != nil || page < 0 {
		return 0, &bot.ArgumentError{Option: "page", Reason: "is not a valid page"}
	}
	return page, nil
}

// surveyModal builds one page of the survey form. prefill holds the current
// answers, nil for a fresh registration. Edit pages pass required false so a
// field may be left blank.
func surveyModal(prefix, title string, questions []*model.Question, page int, prefill model.AnswerSet, required bool) *bot.Modal {
	total := pageCount(len(questions))
	if total > 1 {
		title = fmt.Sprintf("%s (%d/%d)", title, page+1, total)
	}

	modal := &bot.Modal{CustomID: bot.CustomID(prefix, strconv.Itoa(page)), Title: title}
	for _, q := range pageOf(questions, page) {
		value, _ := prefill.Get(q.Key)
		modal.Inputs = append(modal.Inputs, bot.TextInput{
			CustomID:    q.Key,
			Label:       q.Prompt,
			Value:       value,
			Placeholder: placeholder(q),
			Required:    required,
		})
	}
	return modal
}

func placeholder(q *model.Question) string {
	if len(q.Choices) > 0 {
		return bot.Truncate(strings.Join(q.Choices, ", "), maxChoicePreview)
	}
	if q.Kind == model.QuestionKindNumber {
		return "Number"
	}
	return ""
}

// continueButton opens the next page of a paged form
func continueButton(prefix string, nextPage int) bot.Button {
	return bot.Button{
		CustomID: bot.CustomID(prefix, strconv.Itoa(nextPage)),
		Label:    "Continue",
		Style:    bot.ButtonPrimary,
	}
}
