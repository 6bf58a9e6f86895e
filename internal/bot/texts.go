package bot

// Button labels. These double as routing keys: the engine matches incoming
// text against them, so they must stay byte-identical to what the keyboards
// render.
const (
	BtnNumbersSection   = "🔢 Raqam + Izoh"
	BtnCallsignsSection = "🚖 Pozivnoylar"
	BtnEmployeeSection  = "👤 XODIM"

	BtnWriteNumber  = "📝 Raqam yozish"
	BtnTodayNumbers = "📅 Bugungi ro'yxat"
	BtnBackMain     = "🔙 Asosiy menyu"

	BtnAddCallsign   = "📝 Pozivnoy qo'shish"
	BtnTodayCallsign = "📅 Bugungi pozivnoylar"

	BtnEmployeeName = "✏️ Xodim ismi"
	BtnRegions      = "🏙️ Viloyatlar"
)

// Prompts and confirmations.
const (
	msgMainMenu         = "🏠 Asosiy menyu"
	msgNumbersSection   = "🔢 Raqam + Izoh bo'limi"
	msgCallsignsSection = "🚖 Pozivnoylar bo'limi"

	msgNeedSettings = "❌ Avval XODIM bo'limida ismingiz va viloyatingizni tanlashingiz kerak!"

	msgAskPhone = "📞 Telefon raqamingizni yuboring:\n\nNamuna: +998901234567 yoki 901234567"
	msgBadPhone = "❌ Noto'g'ri telefon raqami formati!\nIltimos, raqam yuboring:\nNamuna: +998901234567 yoki 901234567"

	msgAskComment = "💬 Izoh yozing:"

	msgAskCallsign = "🚖 Pozivnoy raqamini yuboring:\n\nNamuna: +998901234567 yoki 901234567"
	msgBadCallsign = "❌ Noto'g'ri raqam formati!\nIltimos, raqam yuboring:\nNamuna: +998901234567 yoki 901234567"

	msgAskEmployeeName = "✏️ Xodim ismingizni yozing:"
	msgChooseRegion    = "Viloyatingizni tanlang:"
)
