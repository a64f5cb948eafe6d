package webutil

import (
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はデフォルト (英語) のトランスレータです。
var Trans ut.Translator

// TransJA は Accept-Language が ja のときに使うトランスレータです。
var TransJA ut.Translator

// 日本語メッセージ用のフィールド名
var fieldNameTranslations = map[string]string{
	"email":                "メールアドレス",
	"password":             "パスワード",
	"password_confirm":     "パスワード (確認)",
	"first_name":           "名",
	"last_name":            "姓",
	"current_password":     "現在のパスワード",
	"new_password":         "新しいパスワード",
	"new_password_confirm": "新しいパスワード (確認)",
	"otp":                  "認証コード",
	"code":                 "認証コード",
	"reset_token":          "リセットトークン",
	"refresh":              "リフレッシュトークン",
	"is_known":             "習得状況",
	"word_id":              "単語ID",
	"search":               "検索語",
	"watch_time_seconds":   "視聴時間",
	"words_searched":       "検索数",
	"words_saved":          "保存数",
	"flashcards_completed": "フラッシュカード完了数",
	"longest_streak":       "連続学習日数",
	"experience_points":    "経験値",
}

func init() {
	// バリデータのインスタンスを生成
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	japanese := ja.New()
	uni := ut.New(english, english, japanese)

	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator en not found")
	}
	TransJA, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator ja not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, TransJA); err != nil {
		log.Fatal(err)
	}

	// 日本語は jsonタグ名を日本語のフィールド名に置き換えてメッセージを作る
	registerJA := func(tag, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, TransJA, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			var t string
			if withParam {
				t, _ = ut.T(tag, translatedFieldName, fe.Param())
			} else {
				t, _ = ut.T(tag, translatedFieldName)
			}
			return t
		})
	}

	registerJA("required", "{0}は必須項目です。", false)
	registerJA("email", "{0}は有効なメールアドレス形式ではありません。", false)
	registerJA("numeric", "{0}は数字で入力してください。", false)
	registerJA("uuid", "{0}の形式が正しくありません。", false)
	registerJA("min", "{0}は{1}文字以上で入力してください。", true)
	registerJA("max", "{0}は{1}文字以下で入力してください。", true)
	registerJA("len", "{0}は{1}文字で入力してください。", true)
	registerJA("gte", "{0}は{1}以上で入力してください。", true)
	registerJA("gt", "{0}は{1}より大きい値で入力してください。", true)
}

// TranslatorFor は Accept-Language からトランスレータを選びます。既定は英語です。
func TranslatorFor(r *http.Request) ut.Translator {
	if r != nil && strings.HasPrefix(strings.ToLower(r.Header.Get("Accept-Language")), "ja") {
		return TransJA
	}
	return Trans
}
