package i18n

var catalogs = map[string]map[string]string{
	"ru": {
		"app_name":             "Блоги",
		"nav_home":             "Главная",
		"nav_ready":            "Сделано",
		"nav_add":              "Добавить новость",
		"nav_login":            "Войти",
		"nav_register":         "Зарегистрироваться",
		"nav_logout":           "Выйти",
		"title_home":           "Записи в блоге",
		"title_ready":          "Выполненные записи",
		"title_add_news":       "Добавление новости",
		"title_edit_news":      "Редактирование новости",
		"title_register":       "Регистрация",
		"title_login":          "Авторизация",
		"field_title":          "Заголовок",
		"field_content":        "Содержание",
		"field_is_private":     "Личное",
		"field_category_name":  "Категория (введите название или выберите из существующих)",
		"field_file":           "Прикрепить файл",
		"field_due_date":       "Срок выполнения",
		"field_email":          "Почта",
		"field_password":       "Пароль",
		"field_password_again": "Повторите пароль",
		"field_name":           "Имя пользователя",
		"field_about":          "Немного о себе",
		"field_remember_me":    "Запомнить меня",
		"button_submit":        "Применить",
		"button_login":         "Войти",
		"button_register":      "Зарегистрироваться",
		"button_filter":        "Показать",
		"action_edit":          "Изменить",
		"action_delete":        "Удалить",
		"action_ready":         "Сделано",
		"action_not_ready":     "Не сделано",
		"action_download":      "Открыть файл",
		"filter_category":      "Категория",
		"filter_all":           "Все",
		"filter_no_category":   "Без категории",
		"label_author":         "Автор",
		"label_created":        "Дата написания",
		"label_due":            "Срок",
		"label_category":       "Категория",
		"empty_list":           "Записей нет",
		"required":             "Обязательное поле",
		"too_long":             "Слишком длинное значение",
		"invalid_email":        "Некорректный адрес почты",
		"invalid_date":         "Некорректная дата",
		"passwords_mismatch":   "Пароли не совпадают",
		"user_exists":          "Такой пользователь уже есть",
		"invalid_credentials":  "Неправильный логин или пароль",
	},
	"en": {
		"app_name":             "Blogs",
		"nav_home":             "Home",
		"nav_ready":            "Done",
		"nav_add":              "Add news",
		"nav_login":            "Log in",
		"nav_register":         "Sign up",
		"nav_logout":           "Log out",
		"title_home":           "Blog posts",
		"title_ready":          "Completed posts",
		"title_add_news":       "Add news",
		"title_edit_news":      "Edit news",
		"title_register":       "Sign up",
		"title_login":          "Log in",
		"field_title":          "Title",
		"field_content":        "Content",
		"field_is_private":     "Private",
		"field_category_name":  "Category (type a name or pick an existing one)",
		"field_file":           "Attach a file",
		"field_due_date":       "Due date",
		"field_email":          "Email",
		"field_password":       "Password",
		"field_password_again": "Repeat password",
		"field_name":           "User name",
		"field_about":          "About you",
		"field_remember_me":    "Remember me",
		"button_submit":        "Apply",
		"button_login":         "Log in",
		"button_register":      "Sign up",
		"button_filter":        "Show",
		"action_edit":          "Edit",
		"action_delete":        "Delete",
		"action_ready":         "Done",
		"action_not_ready":     "Not done",
		"action_download":      "Open file",
		"filter_category":      "Category",
		"filter_all":           "All",
		"filter_no_category":   "No category",
		"label_author":         "Author",
		"label_created":        "Written",
		"label_due":            "Due",
		"label_category":       "Category",
		"empty_list":           "Nothing here yet",
		"required":             "Required",
		"too_long":             "Value is too long",
		"invalid_email":        "Invalid email address",
		"invalid_date":         "Invalid date",
		"passwords_mismatch":   "Passwords do not match",
		"user_exists":          "This user already exists",
		"invalid_credentials":  "Wrong login or password",
	},
}
