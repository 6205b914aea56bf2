package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/prefs"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/store"
)

// chatLocks serializes event application per chat id, so a user's own step
// transitions are applied in arrival order. Different chats never contend.
var chatLocks sync.Map

func lockChat(chatID int64) *sync.Mutex {
	mu, _ := chatLocks.LoadOrStore(chatID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

type dialogueEventInput struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Name   string `json:"name"`
	Type   string `json:"type" binding:"required"`
	Value  string `json:"value"`
}

var eventKinds = map[string]prefs.EventKind{
	string(prefs.EventStartSetup):       prefs.EventStartSetup,
	string(prefs.EventSelectSeason):     prefs.EventSelectSeason,
	string(prefs.EventAnswer):           prefs.EventAnswer,
	string(prefs.EventSelectDifficulty): prefs.EventSelectDifficulty,
	string(prefs.EventSelectTransport):  prefs.EventSelectTransport,
	string(prefs.EventTagToggle):        prefs.EventTagToggle,
	string(prefs.EventTagsDone):         prefs.EventTagsDone,
	string(prefs.EventReset):            prefs.EventReset,
	string(prefs.EventResetRestart):     prefs.EventResetRestart,
	string(prefs.EventContinue):         prefs.EventContinue,
}

var promptText = map[prefs.Prompt]string{
	prefs.PromptChooseSeason:     "Выберите сезон года:",
	prefs.PromptEnterLength:      "Хороший выбор❕\nВведите желаемую длину маршрута (км):",
	prefs.PromptRetryLength:      "Пожалуйста, введите число для длины (например: 12 или 45.5).",
	prefs.PromptEnterPrice:       "Введите желаемую цену (руб):",
	prefs.PromptRetryPrice:       "Пожалуйста, введите число для цены (например: 2000).",
	prefs.PromptChooseDifficulty: "Выберите сложность:",
	prefs.PromptEnterPopularity:  "Введите желаемую популярность (0–100):",
	prefs.PromptRetryPopularity:  "Введите число от 0 до 100.",
	prefs.PromptChooseTransport:  "Выберите транспорт:",
	prefs.PromptChooseTags:       "Выберите предпочитаемые теги (можно несколько):",
	prefs.PromptSetupComplete:    "Все выборы сохранены! 📂\nНажмите 'Найти маршруты', чтобы получить рекомендации \nили 'Посмотреть предпочтения', чтобы уточнить пожелания",
	prefs.PromptResetOrContinue:  "🖇️ У вас уже есть сохранённые предпочтения.\nХотите сбросить их и начать заново или продолжить настройку с текущими❔",
	prefs.PromptResetDone:        "☑️ Все предпочтения успешно сброшены❕\n\nВы можете установить новые предпочтения через кнопку 'Установить предпочтения'.",
	prefs.PromptMainMenu:         "Нажмите пожалуйста одну из кнопок меню 👇🏼:",
}

var promptKeyboard = map[prefs.Prompt]string{
	prefs.PromptChooseSeason:     "season",
	prefs.PromptChooseDifficulty: "difficulty",
	prefs.PromptChooseTransport:  "transport",
	prefs.PromptChooseTags:       "tags",
	prefs.PromptTagAdded:         "tags",
	prefs.PromptResetOrContinue:  "reset_choice",
	prefs.PromptSetupComplete:    "main_menu",
	prefs.PromptMainMenu:         "main_menu",
}

// HandleDialogueEvent applies one chat event to the preference machine and
// returns the next prompt for the transport to render.
func HandleDialogueEvent(c *gin.Context) {
	var input dialogueEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("HandleDialogueEvent: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	kind, ok := eventKinds[input.Type]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type: " + input.Type})
		return
	}

	mu := lockChat(input.ChatID)
	mu.Lock()
	defer mu.Unlock()

	prefStore := store.NewPreferenceStore(config.DB)
	if _, err := prefStore.EnsureUser(c.Request.Context(), input.ChatID, input.Name); err != nil {
		logrus.WithError(err).Error("HandleDialogueEvent: could not ensure user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	machine := prefs.NewMachine(prefStore)
	result, err := machine.Apply(c.Request.Context(), input.ChatID, prefs.Event{Kind: kind, Value: input.Value})
	if err != nil {
		logrus.WithError(err).Error("HandleDialogueEvent: event application failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := promptText[result.Prompt]
	if result.Prompt == prefs.PromptTagAdded {
		message = fmt.Sprintf("Добавлен тег: %s", result.Tag)
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":      result.Prompt,
		"message":     message,
		"keyboard":    promptKeyboard[result.Prompt],
		"preferences": result.Doc,
	})
}

var seasonNames = map[prefs.Season]string{
	prefs.SeasonWinter: "зима",
	prefs.SeasonSpring: "весна",
	prefs.SeasonSummer: "лето",
	prefs.SeasonAutumn: "осень",
}

var stepNames = map[prefs.Step]string{
	prefs.StepLength:     "ожидание ввода длины маршрута",
	prefs.StepPrice:      "ожидание ввода цены",
	prefs.StepDifficulty: "ожидание выбора сложности",
	prefs.StepPopularity: "ожидание ввода популярности",
	prefs.StepTransport:  "ожидание выбора транспорта",
	prefs.StepTags:       "ожидание выбора тегов",
}

// GetPreferences renders the user's current document the way the bot shows
// it, including the in-progress step when setup is unfinished.
func GetPreferences(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	prefStore := store.NewPreferenceStore(config.DB)
	doc, err := prefStore.Get(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if doc.Empty() {
		c.JSON(http.StatusOK, gin.H{
			"message":     "У вас ещё нет предпочтений и мы не можем подобрать маршруты. \nСначала установите их через кнопку 'Установить предпочтения'.",
			"keyboard":    "main_menu",
			"preferences": doc,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     formatPreferences(doc),
		"keyboard":    "preferences",
		"preferences": doc,
	})
}

func formatPreferences(doc prefs.Document) string {
	var b strings.Builder
	b.WriteString("📋 Ваши текущие пожелания 📋\n\nПроверьте, что все актуально, если же нет, \nобновите предпочтения по кнопке внизу❕\n\n")

	if doc.Season != "" {
		fmt.Fprintf(&b, "- Сезон: %s\n", seasonNames[doc.Season])
	} else {
		b.WriteString("Сезон: не установлен\n")
	}
	if doc.LengthKm != nil {
		fmt.Fprintf(&b, "- Длина маршрута: %g км\n", *doc.LengthKm)
	} else {
		b.WriteString("Длина маршрута: не установлена\n")
	}
	if doc.PriceEstimate != nil {
		fmt.Fprintf(&b, "- Цена: %g руб\n", *doc.PriceEstimate)
	} else {
		b.WriteString("Цена: не установлена\n")
	}
	if doc.Difficulty != "" {
		fmt.Fprintf(&b, "- Сложность: %s\n", doc.Difficulty)
	} else {
		b.WriteString("Сложность: не установлена\n")
	}
	if doc.Popularity != nil {
		fmt.Fprintf(&b, "- Популярность: %d/100\n", *doc.Popularity)
	} else {
		b.WriteString("Популярность: не установлена\n")
	}
	if doc.Transport != "" {
		fmt.Fprintf(&b, "- Транспорт: %s\n", doc.Transport)
	} else {
		b.WriteString("Транспорт: не установлен\n")
	}
	if len(doc.Tags) > 0 {
		fmt.Fprintf(&b, "- Теги: %s\n", strings.Join(doc.Tags, ", "))
	} else {
		b.WriteString("Теги: не установлены\n")
	}

	if doc.Step != prefs.StepNone {
		fmt.Fprintf(&b, "\n⏳ Процесс настройки: %s", stepNames[doc.Step])
	}
	return b.String()
}
