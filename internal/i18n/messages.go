package i18n

// Message keys used by the pages.
const (
	KeySignUp                 = "signUp"
	KeyLogin                  = "login"
	KeyLogout                 = "logout"
	KeyHome                   = "home"
	KeyMyProfile              = "myProfile"
	KeyUsername               = "username"
	KeyEmail                  = "email"
	KeyPassword               = "password"
	KeyPasswordRepeat         = "passwordRepeat"
	KeyPasswordMismatch       = "passwordMismatchValidation"
	KeyActivationNotification = "accountActivationNotification"
	KeyActivationSuccess      = "accountActivationSuccess"
	KeyUsers                  = "users"
	KeyNextPage               = "nextPage"
	KeyPreviousPage           = "previousPage"
	KeyLoading                = "loading"
	KeyPageNotFound           = "pageNotFound"
	KeyGenericFailure         = "genericFailure"
	KeyLanguage               = "language"
	KeyInvalidUserID          = "invalidUserID"
)

var en = map[string]string{
	KeySignUp:                 "Sign Up",
	KeyLogin:                  "Login",
	KeyLogout:                 "Logout",
	KeyHome:                   "Home",
	KeyMyProfile:              "My Profile",
	KeyUsername:               "Username",
	KeyEmail:                  "E-mail",
	KeyPassword:               "Password",
	KeyPasswordRepeat:         "Password Repeat",
	KeyPasswordMismatch:       "Password mismatch",
	KeyActivationNotification: "Please check your e-mail to activate your account",
	KeyActivationSuccess:      "Account is activated",
	KeyUsers:                  "Users",
	KeyNextPage:               "next >",
	KeyPreviousPage:           "< previous",
	KeyLoading:                "Loading...",
	KeyPageNotFound:           "Page not found",
	KeyGenericFailure:         "Unexpected error occurred, please try again",
	KeyLanguage:               "Language",
	KeyInvalidUserID:          "Invalid user id",
}

var tr = map[string]string{
	KeySignUp:                 "Kayıt Ol",
	KeyLogin:                  "Giriş",
	KeyLogout:                 "Çıkış",
	KeyHome:                   "Ana Sayfa",
	KeyMyProfile:              "Hesabım",
	KeyUsername:               "Kullanıcı Adı",
	KeyEmail:                  "E-posta",
	KeyPassword:               "Şifre",
	KeyPasswordRepeat:         "Şifre Tekrarı",
	KeyPasswordMismatch:       "Şifreler eşleşmiyor",
	KeyActivationNotification: "Hesabınızı aktifleştirmek için e-postanızı kontrol ediniz",
	KeyActivationSuccess:      "Hesabınız aktifleştirildi",
	KeyUsers:                  "Kullanıcılar",
	KeyNextPage:               "sonraki >",
	KeyPreviousPage:           "< önceki",
	KeyLoading:                "Yükleniyor...",
	KeyPageNotFound:           "Sayfa bulunamadı",
	KeyGenericFailure:         "Beklenmeyen bir hata oluştu, lütfen tekrar deneyin",
	KeyLanguage:               "Dil",
	KeyInvalidUserID:          "Geçersiz kullanıcı numarası",
}
