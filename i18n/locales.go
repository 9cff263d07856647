package i18n

import "golang.org/x/text/language"

var EnUS = &Locale{
	Tag: language.AmericanEnglish,
	Strings: map[Key]string{
		Text:     "Text",
		Block:    "Block",
		Loading:  "Loading...",
		Delete:   "Delete",
		Close:    "Close",
		Cancel:   "Cancel",
		Insert:   "Insert",
		NoResult: "No result",
		Default:  "default",
		Auto:     "auto",

		Title:         "Title",
		Paragraph:     "Paragraph",
		Link:          "Link",
		AlignLeft:     "Align left",
		AlignCenter:   "Align center",
		AlignRight:    "Align right",
		AlignJustify:  "Align justify",
		UnorderedList: "Unordered list",
		NumberList:    "Number list",
		CodeBlock:     "Code block",
		MathBlock:     "Math block",
		Table:         "Table",
		Image:         "Image",
		Iframe:        "iframe",
		Youtube:       "Youtube",
		Blockquote:    "Blockquote",

		Title1Info:        "Big title",
		Title2Info:        "Smaller title",
		Title3Info:        "Medium title",
		UnorderedListInfo: "Unordered list",
		NumberListInfo:    "1, 2, 3, 4",
		CodeBlockInfo:     "Code block with syntax highlighting",
		MathBlockInfo:     "Math block",
		TableInfo:         "Table",
		ImageInfo:         "Image",
		IframeInfo:        "Embed another website",
		YoutubeInfo:       "Embed Youtube video",
		BlockquoteInfo:    "Blockquote",

		NewLineInfo: "Press / to enter commands. Or",
		Placeholder: "Enter content here...",
		InsertCode:  "Insert code",

		IframeURL:  "Website URL",
		YoutubeURL: "Youtube URL",
		Emoji:      "Emoji",
	},
}

var KoKR = &Locale{
	Tag: language.MustParse("ko-KR"),
	Strings: map[Key]string{
		Text:     "텍스트",
		Block:    "블록",
		Loading:  "로딩 중...",
		Delete:   "삭제",
		Close:    "닫기",
		Cancel:   "취소",
		Insert:   "삽입",
		NoResult: "결과 없음",
		Default:  "기본",
		Auto:     "자동",

		Title:         "제목",
		Paragraph:     "본문",
		Link:          "링크",
		AlignLeft:     "왼쪽 정렬",
		AlignCenter:   "가운데 정렬",
		AlignRight:    "오른쪽 정렬",
		AlignJustify:  "양쪽 정렬",
		UnorderedList: "리스트",
		NumberList:    "숫자 리스트",
		CodeBlock:     "코드 블록",
		MathBlock:     "수식 블록",
		Table:         "테이블",
		Image:         "이미지",
		Iframe:        "iframe",
		Youtube:       "유튜브",
		Blockquote:    "인용구",

		Title1Info:        "큰 제목",
		Title2Info:        "좀 더 작은 제목",
		Title3Info:        "적당히 큰 제목",
		UnorderedListInfo: "순서 없는 리스트",
		NumberListInfo:    "1, 2, 3, 4",
		CodeBlockInfo:     "하이라이팅되는 코드 블록",
		MathBlockInfo:     "가운데로 정렬되는 수식 블록",
		TableInfo:         "표 삽입",
		ImageInfo:         "이미지",
		IframeInfo:        "다른 웹사이트 삽입",
		YoutubeInfo:       "유튜브 동영상 삽입",
		BlockquoteInfo:    "있어보이는 인용구 삽입",

		NewLineInfo: "/로 명령어 입력. 또는",
		Placeholder: "내용을 입력하세요...",
		InsertCode:  "코드 삽입",

		IframeURL:  "웹사이트 주소",
		YoutubeURL: "유튜브 주소",
		Emoji:      "이모지",
	},
}
