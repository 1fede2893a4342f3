package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// english is complete; every other table may omit keys and falls back to it.
var english = map[Key]string{
	StrLanguage:     "Language",
	StrSet:          "Set",
	StrBack:         "Back",
	StrSelect:       "Select",
	StrDirUp:        "Up",
	StrDirDown:      "Down",
	StrDirLeft:      "Left",
	StrDirRight:     "Right",
	StrNoOpenBook:   "No open book",
	StrStartReading: "Start reading below",
	StrOpening:      "Opening",
	StrSettings:     "Settings",
	StrFileTransfer: "File transfer",
	StrDisplay:      "Display",
	StrControls:     "Controls",
	StrSystem:       "System",
	StrBatteryPct:   "Battery percentage",
	StrShow:         "Show",
	StrHide:         "Hide",
	StrFrontButtons: "Front buttons",
	StrLayoutBCLR:   "Bck, Cnfrm, Lft, Rght",
	StrLayoutLRBC:   "Lft, Rght, Bck, Cnfrm",
	StrDeviceName:   "Device name",
	StrClearRecents: "Clear recent books",
	StrClearing:     "Clearing",
	StrPowerOff:     "Power off",
	StrPoweringOff:  "Powering off",
	StrDone:         "Done",
	StrDel:          "Del",
	StrSpace:        "Space",
	StrTransferHint: "Open in a browser",
	StrLibraryEmpty: "Library is empty",
	StrFiles:        "files",
}

var translations = map[string]map[Key]string{
	"es": {
		StrLanguage:     "Idioma",
		StrSet:          "Activo",
		StrBack:         "Atrás",
		StrSelect:       "Elegir",
		StrDirUp:        "Subir",
		StrDirDown:      "Bajar",
		StrNoOpenBook:   "Ningún libro abierto",
		StrStartReading: "Empieza a leer abajo",
		StrOpening:      "Abriendo",
		StrSettings:     "Ajustes",
		StrFileTransfer: "Transferencia",
		StrDisplay:      "Pantalla",
		StrControls:     "Controles",
		StrSystem:       "Sistema",
		StrShow:         "Mostrar",
		StrHide:         "Ocultar",
		StrDone:         "Listo",
	},
	"fr": {
		StrLanguage:     "Langue",
		StrSet:          "Actif",
		StrBack:         "Retour",
		StrSelect:       "Choisir",
		StrDirUp:        "Haut",
		StrDirDown:      "Bas",
		StrNoOpenBook:   "Aucun livre ouvert",
		StrStartReading: "Commencez à lire ci-dessous",
		StrOpening:      "Ouverture",
		StrSettings:     "Réglages",
		StrFileTransfer: "Transfert",
		StrDisplay:      "Affichage",
		StrControls:     "Commandes",
		StrSystem:       "Système",
		StrShow:         "Afficher",
		StrHide:         "Masquer",
		StrDone:         "OK",
	},
	"de": {
		StrLanguage:     "Sprache",
		StrSet:          "Aktiv",
		StrBack:         "Zurück",
		StrSelect:       "Wählen",
		StrDirUp:        "Hoch",
		StrDirDown:      "Runter",
		StrNoOpenBook:   "Kein offenes Buch",
		StrStartReading: "Unten weiterlesen",
		StrOpening:      "Öffne",
		StrSettings:     "Einstellungen",
		StrFileTransfer: "Dateiübertragung",
		StrDisplay:      "Anzeige",
		StrControls:     "Tasten",
		StrSystem:       "System",
		StrShow:         "Zeigen",
		StrHide:         "Verbergen",
		StrDone:         "Fertig",
	},
	"cs": {
		StrLanguage:   "Jazyk",
		StrSet:        "Nastaveno",
		StrBack:       "Zpět",
		StrSelect:     "Vybrat",
		StrDirUp:      "Nahoru",
		StrDirDown:    "Dolů",
		StrNoOpenBook: "Žádná otevřená kniha",
		StrSettings:   "Nastavení",
	},
	"pt": {
		StrLanguage:   "Idioma",
		StrSet:        "Ativo",
		StrBack:       "Voltar",
		StrSelect:     "Escolher",
		StrDirUp:      "Cima",
		StrDirDown:    "Baixo",
		StrNoOpenBook: "Nenhum livro aberto",
		StrSettings:   "Definições",
	},
	"ru": {
		StrLanguage:   "Язык",
		StrSet:        "Выбран",
		StrBack:       "Назад",
		StrSelect:     "Выбрать",
		StrDirUp:      "Вверх",
		StrDirDown:    "Вниз",
		StrNoOpenBook: "Нет открытой книги",
		StrSettings:   "Настройки",
	},
	"sv": {
		StrLanguage:   "Språk",
		StrSet:        "Vald",
		StrBack:       "Tillbaka",
		StrSelect:     "Välj",
		StrDirUp:      "Upp",
		StrDirDown:    "Ner",
		StrNoOpenBook: "Ingen öppen bok",
		StrSettings:   "Inställningar",
	},
}

func buildCatalog(tags []language.Tag) (*catalog.Builder, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		if err := builder.SetString(language.English, string(key), msg); err != nil {
			return nil, err
		}
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		for key, msg := range translations[base.String()] {
			if err := builder.SetString(tag, string(key), msg); err != nil {
				return nil, err
			}
		}
	}
	return builder, nil
}
