package bot

// 发给用户的文案
const (
	msgEnterSurveyName = "Введите название опроса, который хотите пройти."
	msgRecentSurveys   = "Последние %d созданных опроса:"
	msgStartHint       = "Чтобы выбрать опрос, введите /start"
	msgNoSuchSurvey    = "Такого опроса не существует, выберите другой.\nЧтобы выбрать опрос, введите /start"
	msgSurveyEmpty     = "Опрос пуст, выберите другой."
	msgSurveyStarted   = "Опрос начался. Для выхода из опроса введите /quit"
	msgAlreadyAnswered = "Вы уже ответили на все вопросы. Спасибо за участие!"
	msgAllAnswered     = "Вы ответили на все вопросы. Спасибо за участие!"
	msgChooseAnother   = "Чтобы выбрать другой опрос, введите /start"
	msgSomethingWrong  = "Что-то пошло не так. Чтобы начать заново, введите /start"
)

const (
	cmdStart = "/start"
	cmdQuit  = "/quit"
)
