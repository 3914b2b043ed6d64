package i18n

// Key identifies a translatable message.
type Key string

const (
	InvalidBody      Key = "invalid_body"
	InvalidParam     Key = "invalid_param"
	NotFound         Key = "not_found"
	Internal         Key = "internal"
	AuthRequired     Key = "auth_required"
	InvalidToken     Key = "invalid_token"
	TokenRevoked     Key = "token_revoked"
	InvalidLogin     Key = "invalid_login"
	UserExists       Key = "user_exists"
	Forbidden        Key = "forbidden"
	ForbiddenOwner   Key = "forbidden_owner"
	ForbiddenActor   Key = "forbidden_actor"
	TooManyRequests  Key = "too_many_requests"
	RequestTimeout   Key = "request_timeout"
	FieldRequired    Key = "field_required"
	FieldInvalid     Key = "field_invalid"
	FieldTooLong     Key = "field_too_long"
	FieldTooShort    Key = "field_too_short"
	UnknownKind      Key = "unknown_kind"
	InvalidEmoji     Key = "invalid_emoji"
	InvalidPage      Key = "invalid_page"
	InvalidLimit     Key = "invalid_limit"
	FriendSelf       Key = "friend_self"
	FriendAlready    Key = "friend_already"
	FriendPending    Key = "friend_pending"
	FriendIncoming   Key = "friend_incoming"
	FriendNoIncoming Key = "friend_no_incoming"
	FriendNoOutgoing Key = "friend_no_outgoing"
	FriendNotFriends Key = "friend_not_friends"
	MessageEmpty     Key = "message_empty"
	MessageTooLong   Key = "message_too_long"
	MessageSelf      Key = "message_self"
	NotParticipant   Key = "not_participant"
	CommentEmpty     Key = "comment_empty"

	PasswordLength   Key = "password_length"
	PasswordUpper    Key = "password_upper"
	PasswordLower    Key = "password_lower"
	PasswordDigit    Key = "password_digit"
	PasswordSpecial  Key = "password_special"
	UsernameInvalid  Key = "username_invalid"
	UsernameReserved Key = "username_reserved"
	EmailInvalid     Key = "email_invalid"

	LoggedOut Key = "logged_out"
	Deleted   Key = "deleted"

	TimeJustNow Key = "time_just_now"
	TimeAgo     Key = "time_ago"

	NotifyReaction      Key = "notify_reaction"
	NotifyComment       Key = "notify_comment"
	NotifyShare         Key = "notify_share"
	NotifyFriendRequest Key = "notify_friend_request"
	NotifyFriendAccept  Key = "notify_friend_accept"
	NotifyMessage       Key = "notify_message"
)

var catalog = map[Key]map[Lang]string{
	InvalidBody:      {Arabic: "صيغة الطلب غير صالحة", English: "Invalid request body"},
	InvalidParam:     {Arabic: "قيمة %s غير صالحة", English: "Invalid %s"},
	NotFound:         {Arabic: "%s غير موجود (المعرّف %v)", English: "%s with ID %v not found"},
	Internal:         {Arabic: "حدث خطأ في الخادم، يرجى المحاولة لاحقاً", English: "Internal server error"},
	AuthRequired:     {Arabic: "يجب تسجيل الدخول أولاً", English: "Authentication required"},
	InvalidToken:     {Arabic: "الجلسة غير صالحة أو منتهية", English: "Invalid or expired session"},
	TokenRevoked:     {Arabic: "تم إنهاء هذه الجلسة", English: "Session has been revoked"},
	InvalidLogin:     {Arabic: "البريد الإلكتروني أو كلمة المرور غير صحيحة", English: "Invalid email or password"},
	UserExists:       {Arabic: "اسم المستخدم أو البريد الإلكتروني مستخدم مسبقاً", English: "Username or email already in use"},
	Forbidden:        {Arabic: "ليست لديك صلاحية لتنفيذ هذا الإجراء", English: "You are not allowed to perform this action"},
	ForbiddenOwner:   {Arabic: "لا يمكنك تعديل أو حذف محتوى لا تملكه", English: "You can only modify your own content"},
	ForbiddenActor:   {Arabic: "لا يمكنك تنفيذ هذا الإجراء نيابة عن مستخدم آخر", English: "You cannot act on behalf of another user"},
	TooManyRequests:  {Arabic: "طلبات كثيرة، يرجى المحاولة بعد قليل", English: "Too many requests, please try again later"},
	RequestTimeout:   {Arabic: "انتهت مهلة الطلب", English: "Request timed out"},
	FieldRequired:    {Arabic: "الحقل %s مطلوب", English: "%s is required"},
	FieldInvalid:     {Arabic: "قيمة الحقل %s غير صالحة", English: "%s is invalid"},
	FieldTooLong:     {Arabic: "الحقل %s أطول من المسموح (%d)", English: "%s must be at most %d characters"},
	FieldTooShort:    {Arabic: "الحقل %s أقصر من المسموح (%d)", English: "%s must be at least %d characters"},
	UnknownKind:      {Arabic: "نوع غير معروف: %s", English: "Unknown kind: %s"},
	InvalidEmoji:     {Arabic: "الرمز التعبيري غير صالح", English: "Invalid emoji"},
	InvalidPage:      {Arabic: "رقم الصفحة يجب أن يكون 1 أو أكثر", English: "page must be 1 or greater"},
	InvalidLimit:     {Arabic: "عدد العناصر يجب أن يكون بين 1 و %d", English: "limit must be between 1 and %d"},
	FriendSelf:       {Arabic: "لا يمكنك إرسال طلب صداقة لنفسك", English: "You cannot send a friend request to yourself"},
	FriendAlready:    {Arabic: "أنتما صديقان بالفعل", English: "You are already friends"},
	FriendPending:    {Arabic: "تم إرسال طلب الصداقة مسبقاً", English: "Friend request already sent"},
	FriendIncoming:   {Arabic: "لديك طلب صداقة معلق من هذا المستخدم", English: "This user has already sent you a friend request"},
	FriendNoIncoming: {Arabic: "لا يوجد طلب صداقة معلق من هذا المستخدم", English: "No pending friend request from this user"},
	FriendNoOutgoing: {Arabic: "لا يوجد طلب صداقة مرسل إلى هذا المستخدم", English: "No pending friend request to this user"},
	FriendNotFriends: {Arabic: "لستما صديقين", English: "You are not friends"},
	MessageEmpty:     {Arabic: "لا يمكن إرسال رسالة فارغة", English: "Message cannot be empty"},
	MessageTooLong:   {Arabic: "الرسالة أطول من المسموح (%d حرف)", English: "Message exceeds %d characters"},
	MessageSelf:      {Arabic: "لا يمكنك مراسلة نفسك", English: "You cannot message yourself"},
	NotParticipant:   {Arabic: "لست مشاركاً في هذه المحادثة", English: "You are not a participant in this conversation"},
	CommentEmpty:     {Arabic: "لا يمكن نشر تعليق فارغ", English: "Comment cannot be empty"},

	PasswordLength:   {Arabic: "يجب أن تكون كلمة المرور بين %d و %d حرفاً", English: "password must be between %d and %d characters"},
	PasswordUpper:    {Arabic: "يجب أن تحتوي كلمة المرور على حرف كبير", English: "password must contain at least one uppercase letter"},
	PasswordLower:    {Arabic: "يجب أن تحتوي كلمة المرور على حرف صغير", English: "password must contain at least one lowercase letter"},
	PasswordDigit:    {Arabic: "يجب أن تحتوي كلمة المرور على رقم", English: "password must contain at least one digit"},
	PasswordSpecial:  {Arabic: "يجب أن تحتوي كلمة المرور على رمز خاص", English: "password must contain at least one special character"},
	UsernameInvalid:  {Arabic: "اسم المستخدم من 3 إلى 30 حرفاً لاتينياً أو رقماً أو _ أو -، ولا يبدأ أو ينتهي بـ _ أو -", English: "username must be 3-30 letters, digits, underscores or hyphens and cannot start or end with _ or -"},
	UsernameReserved: {Arabic: "اسم المستخدم محجوز", English: "username is reserved"},
	EmailInvalid:     {Arabic: "البريد الإلكتروني غير صالح", English: "invalid email address"},

	LoggedOut: {Arabic: "تم تسجيل الخروج", English: "Logged out"},
	Deleted:   {Arabic: "تم الحذف بنجاح", English: "Deleted successfully"},

	TimeJustNow: {Arabic: "الآن", English: "just now"},
	TimeAgo:     {Arabic: "منذ %s", English: "%s ago"},

	NotifyReaction:      {Arabic: "تفاعل %s مع %s الخاص بك %s", English: "%s reacted to your %s with %s"},
	NotifyComment:       {Arabic: "علّق %s على %s الخاص بك", English: "%s commented on your %s"},
	NotifyShare:         {Arabic: "شارك %s %s الخاص بك", English: "%s shared your %s"},
	NotifyFriendRequest: {Arabic: "أرسل لك %s طلب صداقة", English: "%s sent you a friend request"},
	NotifyFriendAccept:  {Arabic: "قبل %s طلب صداقتك", English: "%s accepted your friend request"},
	NotifyMessage:       {Arabic: "رسالة جديدة من %s", English: "New message from %s"},
}

var resources = map[string]map[Lang]string{
	"user":           {Arabic: "المستخدم", English: "User"},
	"content":        {Arabic: "المحتوى", English: "Content"},
	"comment":        {Arabic: "التعليق", English: "Comment"},
	"conversation":   {Arabic: "المحادثة", English: "Conversation"},
	"message":        {Arabic: "الرسالة", English: "Message"},
	"notification":   {Arabic: "الإشعار", English: "Notification"},
	"friend_request": {Arabic: "طلب الصداقة", English: "Friend request"},
	"post":           {Arabic: "المنشور", English: "Post"},
	"book":           {Arabic: "الكتاب", English: "Book"},
	"idea":           {Arabic: "الفكرة", English: "Idea"},
	"image":          {Arabic: "الصورة", English: "Image"},
	"video":          {Arabic: "الفيديو", English: "Video"},
	"truth":          {Arabic: "الحقيقة", English: "Truth"},
	"question":       {Arabic: "السؤال", English: "Question"},
	"ad":             {Arabic: "الإعلان", English: "Ad"},
	"product":        {Arabic: "المنتج", English: "Product"},
	"word":           {Arabic: "الكلمة", English: "Word"},
	"sentence":       {Arabic: "الجملة", English: "Sentence"},
	"id":             {Arabic: "المعرّف", English: "ID"},
	"userId":         {Arabic: "معرّف المستخدم", English: "user ID"},
	"kind":           {Arabic: "النوع", English: "kind"},
	"title":          {Arabic: "العنوان", English: "title"},
	"body":           {Arabic: "المحتوى", English: "body"},
	"emoji":          {Arabic: "الرمز التعبيري", English: "emoji"},
	"username":       {Arabic: "اسم المستخدم", English: "username"},
	"email":          {Arabic: "البريد الإلكتروني", English: "email"},
	"password":       {Arabic: "كلمة المرور", English: "password"},
	"text":           {Arabic: "النص", English: "text"},
	"price":          {Arabic: "السعر", English: "price"},
	"page":           {Arabic: "الصفحة", English: "page"},
	"limit":          {Arabic: "عدد العناصر", English: "limit"},
}

// Months holds Arabic Gregorian month names, January first.
var Months = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}
