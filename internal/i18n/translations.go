package i18n

// Language is a supported display language.
type Language string

const (
	English Language = "en"
	Turkish Language = "tr"
)

// Recognized translation keys.
const (
	KeySiteTitle          = "site.title"
	KeyNavHome            = "nav.home"
	KeyNavAbout           = "nav.about"
	KeyChatPlaceholder    = "chat.placeholder"
	KeyChatTitle          = "chat.title"
	KeyChatSubtitle       = "chat.subtitle"
	KeyChatYou            = "chat.you"
	KeyChatAssistant      = "chat.assistant"
	KeyChatThinking       = "chat.thinking"
	KeyChatStartMessage   = "chat.start_message"
	KeyChatSend           = "chat.send"
	KeyChatNew            = "chat.new"
	KeyChatNewChat        = "chat.new_chat"
	KeyFeaturesTitle      = "features.title"
	KeyPrivateTitle       = "features.private.title"
	KeyPrivateDescription = "features.private.description"
	KeyKeygenTitle        = "features.uncensored.title"
	KeyKeygenDescription  = "features.uncensored.description"
	KeyAlgorithmTitle     = "algorithm.title"
	KeyAlgorithmStep1     = "algorithm.step1"
	KeyAlgorithmStep2     = "algorithm.step2"
	KeyAlgorithmStep3     = "algorithm.step3"
	KeyAlgorithmStep4     = "algorithm.step4"
	KeyAlgorithmStep5     = "algorithm.step5"
	KeyAlgorithmStep6     = "algorithm.step6"
	KeyLearnMore          = "learn.more"
	KeyErrorAPIConnection = "error.api_connection"
	KeyErrorNetwork       = "error.network"
	KeyErrorUnknown       = "error.unknown"
)

// AlgorithmSteps lists the About page steps in display order.
var AlgorithmSteps = []string{
	KeyAlgorithmStep1,
	KeyAlgorithmStep2,
	KeyAlgorithmStep3,
	KeyAlgorithmStep4,
	KeyAlgorithmStep5,
	KeyAlgorithmStep6,
}

var translations = map[Language]map[string]string{
	English: {
		KeySiteTitle:          "BioCryptor",
		KeyNavHome:            "Home",
		KeyNavAbout:           "About",
		KeyChatPlaceholder:    "Enter your message for encryption...",
		KeyChatTitle:          "BioCryptor",
		KeyChatSubtitle:       "Genetic Encryption AI",
		KeyChatYou:            "You",
		KeyChatAssistant:      "BioCryptor AI",
		KeyChatThinking:       "Thinking...",
		KeyChatStartMessage:   "Type a message to start a conversation",
		KeyChatSend:           "Send",
		KeyChatNew:            "New",
		KeyChatNewChat:        "Start New Chat",
		KeyFeaturesTitle:      "GENETIC ENCRYPTION ALGORITHM",
		KeyPrivateTitle:       "Advanced Cryptographic Security",
		KeyPrivateDescription: "BioCryptor employs a sophisticated genetic encryption algorithm that converts data into DNA-like sequences using a quaternary base system (A, C, G, T nucleotides). This biomimetic approach creates multiple layers of obfuscation by transforming ASCII values through temporal integration, base-4 conversion, and genetic mapping, resulting in cryptographically secure ciphertext that mimics natural biological complexity.",
		KeyKeygenTitle:        "Bioinspired Key Generation",
		KeyKeygenDescription:  "Our proprietary key derivation function combines user-provided open keys with system timestamps to generate dynamic encryption keys. The algorithm processes ASCII character values, integrates temporal data (day, month, year, hour, minute), and applies modular arithmetic operations before mapping to genetic codons. This creates a unique, time-dependent encryption matrix that ensures perfect forward secrecy.",
		KeyAlgorithmTitle:     "ALGORITHM IMPLEMENTATION DETAILS",
		KeyAlgorithmStep1:     "ASCII Conversion: Input string characters are converted to their corresponding ASCII decimal values for numerical processing",
		KeyAlgorithmStep2:     "Temporal Integration: System timestamp components (day, month, year, hour, minute) are mathematically combined with ASCII values",
		KeyAlgorithmStep3:     "Base-4 Transformation: Combined values undergo base-4 conversion with zero-padding to ensure consistent 4-digit quaternary representation",
		KeyAlgorithmStep4:     "Genetic Mapping: Quaternary digits (0,1,2,3) are mapped to DNA nucleotides (A,C,G,T) creating biologically-inspired sequences",
		KeyAlgorithmStep5:     "Codon Formation: DNA sequences are segmented into 3-nucleotide codons, mimicking genetic triplet codes used in protein synthesis",
		KeyAlgorithmStep6:     "XOR Encryption: Final encryption applies XOR operations using generated genetic keys with random initialization vectors (IV) and Base64 encoding",
		KeyLearnMore:          "LEARN MORE",
		KeyErrorAPIConnection: "Sorry, an error occurred. Please try again.",
		KeyErrorNetwork:       "Network error. Please check your connection.",
		KeyErrorUnknown:       "An unknown error occurred.",
	},
	Turkish: {
		KeySiteTitle:          "BioCryptor",
		KeyNavHome:            "Ana Sayfa",
		KeyNavAbout:           "Hakkında",
		KeyChatPlaceholder:    "Şifreleme için mesajınızı girin...",
		KeyChatTitle:          "BioCryptor",
		KeyChatSubtitle:       "Genetik Şifreleme Yapay Zekası",
		KeyChatYou:            "Sen",
		KeyChatAssistant:      "BioCryptor AI",
		KeyChatThinking:       "Düşünüyor...",
		KeyChatStartMessage:   "Bir konuşma başlatmak için mesaj yazın",
		KeyChatSend:           "Gönder",
		KeyChatNew:            "Yeni",
		KeyChatNewChat:        "Yeni Sohbet Başlat",
		KeyFeaturesTitle:      "GENETİK ŞİFRELEME ALGORİTMASI",
		KeyPrivateTitle:       "Gelişmiş Kriptografik Güvenlik",
		KeyPrivateDescription: "BioCryptor, verileri quaternary taban sistemi (A, C, G, T nükleotidleri) kullanarak DNA benzeri dizilere dönüştüren sofistike bir genetik şifreleme algoritması kullanır. Bu biyomimetik yaklaşım, ASCII değerlerini zamansal entegrasyon, base-4 dönüşümü ve genetik haritalama yoluyla dönüştürerek doğal biyolojik karmaşıklığı taklit eden kriptografik güvenli şifreli metinler oluşturan çoklu gizleme katmanları yaratır.",
		KeyKeygenTitle:        "Biyo-İlhamlı Anahtar Üretimi",
		KeyKeygenDescription:  "Özel anahtar türetme fonksiyonumuz, dinamik şifreleme anahtarları oluşturmak için kullanıcı tarafından sağlanan açık anahtarları sistem zaman damgalarıyla birleştirir. Algoritma ASCII karakter değerlerini işler, zamansal verileri (gün, ay, yıl, saat, dakika) entegre eder ve genetik kodonlara haritalamadan önce modüler aritmetik işlemler uygular. Bu, mükemmel ileriye dönük gizlilik sağlayan benzersiz, zamana bağlı bir şifreleme matrisi oluşturur.",
		KeyAlgorithmTitle:     "ALGORİTMA UYGULAMA DETAYLARI",
		KeyAlgorithmStep1:     "ASCII Dönüşümü: Giriş dizesi karakterleri sayısal işleme için karşılık gelen ASCII ondalık değerlerine dönüştürülür",
		KeyAlgorithmStep2:     "Zamansal Entegrasyon: Sistem zaman damgası bileşenleri (gün, ay, yıl, saat, dakika) ASCII değerleriyle matematiksel olarak birleştirilir",
		KeyAlgorithmStep3:     "Base-4 Dönüşümü: Birleştirilmiş değerler tutarlı 4 haneli quaternary gösterim sağlamak için sıfır dolgusuyla base-4 dönüşümüne tabi tutulur",
		KeyAlgorithmStep4:     "Genetik Haritalama: Quaternary rakamlar (0,1,2,3) DNA nükleotidlerine (A,C,G,T) haritalanarak biyolojik ilhamlı diziler oluşturulur",
		KeyAlgorithmStep5:     "Kodon Oluşumu: DNA dizileri protein sentezinde kullanılan genetik triplet kodları taklit ederek 3-nücleotid kodonlara bölünür",
		KeyAlgorithmStep6:     "XOR Şifreleme: Final şifreleme rastgele başlatma vektörleri (IV) ve Base64 kodlaması ile üretilen genetik anahtarları kullanarak XOR işlemleri uygular",
		KeyLearnMore:          "DAHA FAZLA BİLGİ",
		KeyErrorAPIConnection: "Üzgünüm, bir hata oluştu. Lütfen tekrar deneyin.",
		KeyErrorNetwork:       "Ağ hatası. Lütfen bağlantınızı kontrol edin.",
		KeyErrorUnknown:       "Bilinmeyen bir hata oluştu.",
	},
}
